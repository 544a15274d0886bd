package provider

import (
	"context"
)

// Request 表示發送到 AI 提供者的請求
type Request struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
}

// Response 表示從 AI 提供者收到的響應
type Response struct {
	Content string `json:"content"`
	Usage   struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// Provider 定義 AI 提供者介面；API Key 隨每次呼叫傳入，由工作階段持有
type Provider interface {
	// Generate 生成 AI 響應
	Generate(ctx context.Context, apiKey string, req *Request) (*Response, error)

	// Close 關閉提供者連接
	Close() error
}

// Func 將函式轉為 Provider，測試用 stub 常用
type Func func(ctx context.Context, apiKey string, req *Request) (*Response, error)

// Generate 實作 Provider
func (f Func) Generate(ctx context.Context, apiKey string, req *Request) (*Response, error) {
	return f(ctx, apiKey, req)
}

// Close 實作 Provider
func (f Func) Close() error { return nil }
