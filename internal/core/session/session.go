// Package session 保存每個使用者工作階段的狀態：API Key、最近一次生成的食譜、
// 一週菜單與問答紀錄。狀態透過 Store 明確傳遞，不使用全域變數。
package session

import (
	"context"
	"fmt"
	"time"

	"recipe-studio/internal/core/recipe"
	"recipe-studio/internal/infrastructure/config"
	"recipe-studio/internal/metrics"
	"recipe-studio/internal/pkg/common"
)

// ChatTurn 一次問答
type ChatTurn struct {
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
}

// Session 工作階段狀態
type Session struct {
	ID            string          `json:"id"`
	APIKey        string          `json:"api_key,omitempty"`
	LastGenerated *recipe.Record  `json:"last_generated,omitempty"`
	MealPlan      recipe.MealPlan `json:"meal_plan,omitempty"`
	History       []ChatTurn      `json:"history,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	LastSeen      time.Time       `json:"last_seen"`
}

// Clone 深拷貝，呼叫端可自由修改回傳值
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	if s.LastGenerated != nil {
		r := *s.LastGenerated
		c.LastGenerated = &r
	}
	if s.MealPlan != nil {
		c.MealPlan = make(recipe.MealPlan, len(s.MealPlan))
		for k, v := range s.MealPlan {
			c.MealPlan[k] = v
		}
	}
	if s.History != nil {
		c.History = append([]ChatTurn(nil), s.History...)
	}
	return &c
}

// HasAPIKey 是否已設定 API Key
func (s *Session) HasAPIKey() bool {
	return s != nil && s.APIKey != ""
}

// Store 工作階段存放介面。找不到或已過期時 Get 回傳 common.ErrSessionNotFound。
type Store interface {
	Create(ctx context.Context, apiKey string) (*Session, error)
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
	Close() error
}

func newSession(apiKey string) *Session {
	now := time.Now()
	return &Session{
		ID:        common.GenerateUUID(),
		APIKey:    apiKey,
		CreatedAt: now,
		LastSeen:  now,
	}
}

// NewStore 依設定建立對應的後端
func NewStore(cfg *config.Config, m *metrics.Metrics) (Store, error) {
	switch cfg.Session.Backend {
	case "", "memory":
		return NewMemoryStore(cfg.Session.TTL, cfg.Session.CleanupInterval, m), nil
	case "redis":
		return NewRedisStore(cfg.Redis, cfg.Session.TTL)
	default:
		return nil, fmt.Errorf("unknown session backend: %s", cfg.Session.Backend)
	}
}
