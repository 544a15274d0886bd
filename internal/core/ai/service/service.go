package service

import (
	"context"
	"strings"
	"time"

	"recipe-studio/internal/core/ai/provider"
	"recipe-studio/internal/infrastructure/config"
	"recipe-studio/internal/metrics"
	"recipe-studio/internal/pkg/common"

	"go.uber.org/zap"
)

// Service 生成閘道：單次呼叫外部生成服務，不重試、不快取
type Service struct {
	provider    provider.Provider
	recipeModel string
	chatModel   string
	metrics     *metrics.Metrics
}

// NewService 創建生成閘道
func NewService(cfg config.GeminiConfig, p provider.Provider, m *metrics.Metrics) *Service {
	return &Service{
		provider:    p,
		recipeModel: cfg.RecipeModel,
		chatModel:   cfg.ChatModel,
		metrics:     m,
	}
}

// Generate 以食譜模型生成文字
func (s *Service) Generate(ctx context.Context, apiKey, prompt string) (string, error) {
	return s.generate(ctx, apiKey, s.recipeModel, prompt)
}

// Chat 以問答模型生成文字
func (s *Service) Chat(ctx context.Context, apiKey, prompt string) (string, error) {
	return s.generate(ctx, apiKey, s.chatModel, prompt)
}

func (s *Service) generate(ctx context.Context, apiKey, model, prompt string) (string, error) {
	if err := CheckAPIKey(apiKey); err != nil {
		return "", err
	}

	start := time.Now()
	resp, err := s.provider.Generate(ctx, strings.TrimSpace(apiKey), &provider.Request{
		Model:  model,
		Prompt: prompt,
	})
	duration := time.Since(start)

	if err == nil && (resp == nil || strings.TrimSpace(resp.Content) == "") {
		err = common.NewAPIError("empty response from generation service", nil)
	}
	s.metrics.ObserveGeneration(model, duration, err)
	common.LogAICall(model, duration, err)

	if err != nil {
		if common.IsAPIError(err) {
			return "", err
		}
		return "", common.NewAPIError("", err)
	}

	common.LogDebug("生成內容",
		zap.String("model", model),
		zap.Int("content_length", len(resp.Content)),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
	)

	return strings.TrimSpace(resp.Content), nil
}

// CheckAPIKey 空白的 API Key 視為設定錯誤
func CheckAPIKey(apiKey string) error {
	if strings.TrimSpace(apiKey) == "" {
		return common.NewConfigurationError("API key missing")
	}
	return nil
}

// Close 關閉底層提供者
func (s *Service) Close() error {
	return s.provider.Close()
}
