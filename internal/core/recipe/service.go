package recipe

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"recipe-studio/internal/pkg/common"

	"go.uber.org/zap"
)

// Generator 生成閘道
type Generator interface {
	Generate(ctx context.Context, apiKey, prompt string) (string, error)
	Chat(ctx context.Context, apiKey, prompt string) (string, error)
}

// Service 食譜、一週菜單與問答
type Service struct {
	gen Generator
}

// NewService 創建新的食譜服務
func NewService(gen Generator) *Service {
	return &Service{gen: gen}
}

// GenerateRecipe 根據食材和偏好生成食譜
func (s *Service) GenerateRecipe(ctx context.Context, apiKey string, req Request) (*Record, error) {
	if strings.TrimSpace(req.Ingredients) == "" {
		return nil, common.NewValidationError("please enter some ingredients")
	}
	if req.Servings < 1 {
		return nil, common.NewValidationError("servings must be at least 1")
	}
	if req.Cuisine == "" {
		req.Cuisine = "Any"
	}
	if req.Diet == "" {
		req.Diet = "Any"
	}
	if !ValidCuisine(req.Cuisine) {
		return nil, common.NewValidationError(fmt.Sprintf("unknown cuisine %q", req.Cuisine))
	}
	if !ValidDiet(req.Diet) {
		return nil, common.NewValidationError(fmt.Sprintf("unknown diet %q", req.Diet))
	}

	text, err := s.gen.Generate(ctx, apiKey, BuildRecipePrompt(req))
	if err != nil {
		return nil, fmt.Errorf("generate recipe: %w", err)
	}

	common.LogInfo("食譜生成完成",
		zap.String("cuisine", req.Cuisine),
		zap.String("diet", req.Diet),
		zap.Int("servings", req.Servings),
	)

	return &Record{
		IngredientsInput: req.Ingredients,
		Cuisine:          req.Cuisine,
		Diet:             req.Diet,
		Servings:         req.Servings,
		Text:             text,
		Timestamp:        Now(),
	}, nil
}

// GenerateMealPlan 依週一到週日逐日生成。
// 單日失敗時以 "Error: ..." 作為該日內容並繼續；缺少 API Key 則整體失敗。
func (s *Service) GenerateMealPlan(ctx context.Context, apiKey string, servings int) (MealPlan, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, common.NewConfigurationError("API key missing")
	}
	if servings < 1 {
		return nil, common.NewValidationError("servings must be at least 1")
	}

	plan := make(MealPlan, len(Days))
	failed := 0
	for _, day := range Days {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		text, err := s.gen.Generate(ctx, apiKey, BuildDayPrompt(day, servings))
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			common.LogWarn("單日菜單生成失敗", zap.String("day", day), zap.Error(err))
			plan[day] = "Error: " + errorText(err)
			failed++
			continue
		}
		plan[day] = text
	}

	common.LogInfo("一週菜單生成完成",
		zap.Int("servings", servings),
		zap.Int("failed_days", failed),
	)
	return plan, nil
}

// Chat 簡短的料理問答
func (s *Service) Chat(ctx context.Context, apiKey, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", common.NewValidationError("please type a question")
	}

	answer, err := s.gen.Chat(ctx, apiKey, BuildChatPrompt(question))
	if err != nil {
		return "", fmt.Errorf("chat: %w", err)
	}
	return answer, nil
}

// errorText 優先使用生成服務的原始訊息
func errorText(err error) string {
	var apiErr *common.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
