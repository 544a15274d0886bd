package health

import (
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"recipe-studio/internal/infrastructure/config"
	"recipe-studio/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime"`
	Gemini    GeminiStatus           `json:"gemini"`
}

// GeminiStatus 生成服務設定狀態，不含金鑰本身
type GeminiStatus struct {
	RecipeModel   string `json:"recipe_model"`
	ChatModel     string `json:"chat_model"`
	DefaultAPIKey bool   `json:"default_api_key"`
}

// Handler 健康檢查處理器
type Handler struct {
	cfg       *config.Config
	storePath string
}

// NewHandler storePath 為食譜庫文件路徑，就緒檢查確認其目錄可寫入
func NewHandler(cfg *config.Config, storePath string) *Handler {
	return &Handler{cfg: cfg, storePath: storePath}
}

// HealthCheck 健康檢查處理器
func (h *Handler) HealthCheck(c *gin.Context) {
	// 獲取運行時信息
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   h.cfg.App.Version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
		Gemini: GeminiStatus{
			RecipeModel:   h.cfg.Gemini.RecipeModel,
			ChatModel:     h.cfg.Gemini.ChatModel,
			DefaultAPIKey: h.cfg.Gemini.APIKey != "",
		},
	}

	common.LogDebug("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 就緒檢查：資料目錄存在且可寫入
func (h *Handler) ReadinessCheck(c *gin.Context) {
	dir := filepath.Dir(h.storePath)
	tmp, err := os.CreateTemp(dir, ".ready-*")
	if err != nil {
		common.LogWarn("Data directory not writable", zap.String("dir", dir), zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not_ready",
			"reason": "data directory not writable",
		})
		return
	}
	tmp.Close()
	_ = os.Remove(tmp.Name())

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessCheck 存活檢查處理器
func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
