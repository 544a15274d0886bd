package common

import (
	"errors"
	"net/http"
)

// ErrorResponse 定義 API 錯誤響應結構
type ErrorResponse struct {
	Code    string `json:"code"`              // 錯誤代碼
	Message string `json:"message"`           // 錯誤信息
	Details string `json:"details,omitempty"` // 詳細信息（僅在開發模式顯示）
}

// CustomError 定義自定義錯誤類型
type CustomError struct {
	Code    string // 錯誤代碼
	Message string // 錯誤信息
	Err     error  // 原始錯誤
	Status  int    // HTTP 狀態碼
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewError 創建新的自定義錯誤
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// ValidationError 表示驗證錯誤
type ValidationError struct {
	message string
}

// Error 實現 error 介面
func (e *ValidationError) Error() string {
	return e.message
}

// NewValidationError 創建新的驗證錯誤
func NewValidationError(message string) error {
	return &ValidationError{
		message: message,
	}
}

// IsValidationError 檢查是否為驗證錯誤
func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// ConfigurationError 生成服務的憑證缺失或無效
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

// NewConfigurationError 創建設定錯誤
func NewConfigurationError(reason string) error {
	return &ConfigurationError{Reason: reason}
}

// IsConfigurationError 檢查是否為設定錯誤
func IsConfigurationError(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

// APIError 外部生成服務呼叫失敗，Message 為服務原始訊息
type APIError struct {
	Message string
	Err     error
}

func (e *APIError) Error() string {
	return "API error: " + e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// NewAPIError 創建 API 錯誤；message 為空時使用底層錯誤訊息
func NewAPIError(message string, err error) error {
	if message == "" && err != nil {
		message = err.Error()
	}
	return &APIError{Message: message, Err: err}
}

// IsAPIError 檢查是否為 API 錯誤
func IsAPIError(err error) bool {
	var target *APIError
	return errors.As(err, &target)
}

// ParseError 持久化文件或匯入資料無法解析
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return "parse error in " + e.Source + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError 創建解析錯誤
func NewParseError(source string, err error) error {
	return &ParseError{Source: source, Err: err}
}

// IsParseError 檢查是否為解析錯誤
func IsParseError(err error) bool {
	var target *ParseError
	return errors.As(err, &target)
}

// 預定義錯誤代碼
const (
	// 客戶端錯誤 (4xx)
	ErrCodeInvalidRequest    = "INVALID_REQUEST"     // 400
	ErrCodeNotFound          = "NOT_FOUND"           // 404
	ErrCodeConfiguration     = "CONFIGURATION_ERROR" // 412
	ErrCodeTooManyRequests   = "TOO_MANY_REQUESTS"   // 429
	ErrCodeSessionNotFound   = "SESSION_NOT_FOUND"   // 404
	ErrCodeNothingToExport   = "NOTHING_TO_EXPORT"   // 404
	ErrCodeRequestBodyTooBig = "REQUEST_TOO_LARGE"   // 413

	// 服務器錯誤 (5xx)
	ErrCodeInternalError  = "INTERNAL_ERROR"   // 500
	ErrCodeParse          = "PARSE_ERROR"      // 500
	ErrCodeAIServiceError = "AI_SERVICE_ERROR" // 502
	ErrCodeRequestTimeout = "REQUEST_TIMEOUT"  // 504
)

// 預定義錯誤
var (
	ErrNotFound        = NewError(ErrCodeNotFound, "資源不存在", http.StatusNotFound, nil)
	ErrSessionNotFound = NewError(ErrCodeSessionNotFound, "工作階段不存在或已過期", http.StatusNotFound, nil)
	ErrNothingToExport = NewError(ErrCodeNothingToExport, "尚無可匯出的內容", http.StatusNotFound, nil)
)
