package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestErrorKindsSurviveWrapping(t *testing.T) {
	cfgErr := fmt.Errorf("generate recipe: %w", NewConfigurationError("API key missing"))
	assert.True(t, IsConfigurationError(cfgErr))
	assert.False(t, IsAPIError(cfgErr))

	cause := errors.New("dial tcp: timeout")
	apiErr := fmt.Errorf("chat: %w", NewAPIError("", cause))
	assert.True(t, IsAPIError(apiErr))
	assert.ErrorIs(t, apiErr, cause)

	var target *APIError
	require.True(t, errors.As(apiErr, &target))
	assert.Equal(t, "dial tcp: timeout", target.Message)

	parseErr := NewParseError("data/saved_recipes.json", errors.New("unexpected EOF"))
	assert.True(t, IsParseError(fmt.Errorf("load: %w", parseErr)))
	assert.Contains(t, parseErr.Error(), "data/saved_recipes.json")

	assert.True(t, IsValidationError(fmt.Errorf("x: %w", NewValidationError("bad"))))
	assert.ErrorIs(t, fmt.Errorf("get: %w", ErrNotFound), ErrNotFound)
}

func TestParseJSONBytes(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}
	require.NoError(t, ParseJSONBytes([]byte(`{"name":"soup"}`), &v))
	assert.Equal(t, "soup", v.Name)

	assert.Error(t, ParseJSONBytes([]byte(`{"name":"soup"} {"name":"stew"}`), &v))
	assert.Error(t, ParseJSONBytes([]byte(`{"name":`), &v))
}

func TestMarshalIndent(t *testing.T) {
	data, err := MarshalIndent(map[string]string{"text": "Crème <b> & café"})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"text\": \"Crème <b> & café\"\n}", string(data))
}

func TestFilterFields(t *testing.T) {
	fields := filterFields([]zap.Field{
		zap.String("api_key", "secret"),
		zap.String("google_api_key", "secret"),
		zap.String("prompt", "long prompt"),
		zap.String("model", "gemini-2.5-flash"),
	})
	require.Len(t, fields, 1)
	assert.Equal(t, "model", fields[0].Key)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "debug", ParseLevel("DEBUG").String())
	assert.Equal(t, "warn", ParseLevel("Warn").String())
	assert.Equal(t, "info", ParseLevel("nonsense").String())
}
