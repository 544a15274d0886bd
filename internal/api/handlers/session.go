package handlers

import (
	"net/http"
	"strings"
	"time"

	"recipe-studio/internal/api/middleware"
	"recipe-studio/internal/core/session"
	"recipe-studio/internal/infrastructure/config"
	"recipe-studio/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionResponse 工作階段摘要，不回傳完整 API Key
type SessionResponse struct {
	SessionID        string    `json:"session_id"`
	HasAPIKey        bool      `json:"has_api_key"`
	APIKeyMasked     string    `json:"api_key_masked"`
	HasLastGenerated bool      `json:"has_last_generated"`
	MealPlanDays     int       `json:"meal_plan_days"`
	ChatTurns        int       `json:"chat_turns"`
	CreatedAt        time.Time `json:"created_at"`
}

func newSessionResponse(s *session.Session) SessionResponse {
	return SessionResponse{
		SessionID:        s.ID,
		HasAPIKey:        s.HasAPIKey(),
		APIKeyMasked:     config.MaskAPIKey(s.APIKey),
		HasLastGenerated: s.LastGenerated != nil,
		MealPlanDays:     len(s.MealPlan),
		ChatTurns:        len(s.History),
		CreatedAt:        s.CreatedAt,
	}
}

// APIKeyRequest 設定 API Key；空字串表示清除
type APIKeyRequest struct {
	APIKey string `json:"api_key"`
}

// CreateSession 明確建立工作階段；未提供 api_key 時沿用環境設定
func (h *Handler) CreateSession(c *gin.Context) {
	var req APIKeyRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}

	apiKey := strings.TrimSpace(req.APIKey)
	if apiKey == "" {
		apiKey = h.defaultAPIKey
	}

	sess, err := h.sessions.Create(c.Request.Context(), apiKey)
	if err != nil {
		writeError(c, err)
		return
	}

	common.LogInfo("建立工作階段", zap.String("session_id", sess.ID))
	c.Header(middleware.SessionHeader, sess.ID)
	c.JSON(http.StatusCreated, newSessionResponse(sess))
}

// GetSession 目前工作階段摘要
func (h *Handler) GetSession(c *gin.Context) {
	c.JSON(http.StatusOK, newSessionResponse(currentSession(c)))
}

// EndSession 結束工作階段，捨棄所有暫存狀態
func (h *Handler) EndSession(c *gin.Context) {
	sess := currentSession(c)
	if err := h.sessions.Delete(c.Request.Context(), sess.ID); err != nil {
		writeError(c, err)
		return
	}
	common.LogInfo("結束工作階段", zap.String("session_id", sess.ID))
	c.Status(http.StatusNoContent)
}

// SetAPIKey 設定或清除工作階段的 API Key
func (h *Handler) SetAPIKey(c *gin.Context) {
	var req APIKeyRequest
	if !bindJSON(c, &req) {
		return
	}

	sess := currentSession(c)
	sess.APIKey = strings.TrimSpace(req.APIKey)
	if !h.saveSession(c, sess) {
		return
	}

	common.LogInfo("API Key 已更新",
		zap.String("session_id", sess.ID),
		zap.String("masked", config.MaskAPIKey(sess.APIKey)),
	)
	c.JSON(http.StatusOK, newSessionResponse(sess))
}
