package middleware

import (
	"errors"
	"net/http"

	"recipe-studio/internal/core/session"
	"recipe-studio/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// SessionHeader 工作階段 ID 的請求與回應標頭
	SessionHeader = "X-Session-ID"

	sessionKey   = "session"
	sessionIDKey = "session_id"
)

// Session 載入工作階段。沒有帶標頭時建立新的工作階段，並以 defaultAPIKey 作為初始 API Key；
// 帶了但已不存在時回傳 404。
func Session(store session.Store, defaultAPIKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		id := c.GetHeader(SessionHeader)

		var (
			sess *session.Session
			err  error
		)
		if id == "" {
			sess, err = store.Create(ctx, defaultAPIKey)
			if err == nil {
				common.LogInfo("建立工作階段", zap.String("session_id", sess.ID))
			}
		} else {
			sess, err = store.Get(ctx, id)
		}

		if err != nil {
			var ce *common.CustomError
			if errors.As(err, &ce) {
				c.AbortWithStatusJSON(ce.Status, common.ErrorResponse{Code: ce.Code, Message: ce.Message})
				return
			}
			common.LogError("載入工作階段失敗", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, common.ErrorResponse{
				Code:    common.ErrCodeInternalError,
				Message: "failed to load session",
			})
			return
		}

		c.Header(SessionHeader, sess.ID)
		c.Set(sessionKey, sess)
		c.Set(sessionIDKey, sess.ID)
		c.Next()
	}
}

// CurrentSession 取得 Session 中間件載入的工作階段
func CurrentSession(c *gin.Context) *session.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*session.Session)
	return sess
}
