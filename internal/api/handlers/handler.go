// Package handlers 將每個操作包成一次同步的 HTTP 請求，本身不含業務邏輯。
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"recipe-studio/internal/api/middleware"
	"recipe-studio/internal/core/recipe"
	"recipe-studio/internal/core/session"
	"recipe-studio/internal/core/store"
	"recipe-studio/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 所有 API 處理器共用的相依
type Handler struct {
	recipes       *recipe.Service
	store         *store.Store
	sessions      session.Store
	defaultAPIKey string
}

// NewHandler 創建處理器；defaultAPIKey 為新工作階段的初始 API Key
func NewHandler(recipes *recipe.Service, st *store.Store, sessions session.Store, defaultAPIKey string) *Handler {
	return &Handler{
		recipes:       recipes,
		store:         st,
		sessions:      sessions,
		defaultAPIKey: defaultAPIKey,
	}
}

// writeError 將錯誤種類對應到 HTTP 狀態與錯誤代碼
func writeError(c *gin.Context, err error) {
	status, resp := classify(c.Request.Context(), err)

	fields := []zap.Field{
		zap.Error(err),
		zap.Int("status", status),
		zap.String("code", resp.Code),
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", requestid.Get(c)),
	}
	if status >= http.StatusInternalServerError {
		common.LogError("請求處理失敗", fields...)
	} else {
		common.LogWarn("請求處理失敗", fields...)
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, resp)
}

// classify 只有請求本身的 context 結束時才回報逾時；
// 上游呼叫自己的逾時屬於生成服務錯誤
func classify(ctx context.Context, err error) (int, common.ErrorResponse) {
	var (
		apiErr *common.APIError
		custom *common.CustomError
	)

	requestDone := ctx.Err() != nil

	switch {
	case requestDone && errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, common.ErrorResponse{Code: common.ErrCodeRequestTimeout, Message: "Request timeout"}
	case requestDone && errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout, common.ErrorResponse{Code: common.ErrCodeRequestTimeout, Message: "Request canceled"}
	case common.IsValidationError(err):
		return http.StatusBadRequest, common.ErrorResponse{Code: common.ErrCodeInvalidRequest, Message: err.Error()}
	case common.IsConfigurationError(err):
		return http.StatusPreconditionFailed, common.ErrorResponse{
			Code:    common.ErrCodeConfiguration,
			Message: "Set API key in Settings first.",
			Details: err.Error(),
		}
	case errors.As(err, &apiErr):
		return http.StatusBadGateway, common.ErrorResponse{Code: common.ErrCodeAIServiceError, Message: apiErr.Message}
	case common.IsParseError(err):
		return http.StatusInternalServerError, common.ErrorResponse{Code: common.ErrCodeParse, Message: err.Error()}
	case errors.As(err, &custom):
		return custom.Status, common.ErrorResponse{Code: custom.Code, Message: custom.Message}
	default:
		return http.StatusInternalServerError, common.ErrorResponse{Code: common.ErrCodeInternalError, Message: "Internal server error"}
	}
}

// bindJSON 綁定失敗時直接回應 400
func bindJSON(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		writeError(c, common.NewValidationError(fmt.Sprintf("invalid request: %v", err)))
		return false
	}
	return true
}

// indexParam 解析路徑中的 :index
func indexParam(c *gin.Context) (int, bool) {
	idx, err := strconv.Atoi(c.Param("index"))
	if err != nil || idx < 0 {
		writeError(c, common.NewValidationError("index must be a non-negative integer"))
		return 0, false
	}
	return idx, true
}

// saveSession 寫回工作階段
func (h *Handler) saveSession(c *gin.Context, sess *session.Session) bool {
	if err := h.sessions.Save(c.Request.Context(), sess); err != nil {
		writeError(c, err)
		return false
	}
	return true
}

func attachment(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, data)
}

func currentSession(c *gin.Context) *session.Session {
	return middleware.CurrentSession(c)
}
