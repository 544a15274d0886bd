package export

import (
	"fmt"
	"strings"

	"recipe-studio/internal/core/recipe"
	"recipe-studio/internal/pkg/common"
)

// ExportRecord 將食譜輸出為縮排 JSON
func ExportRecord(r recipe.Record) ([]byte, error) {
	data, err := common.MarshalIndent(r)
	if err != nil {
		return nil, fmt.Errorf("failed to encode recipe: %w", err)
	}
	return data, nil
}

// ImportRecord 解析 ExportRecord 的輸出
func ImportRecord(data []byte) (recipe.Record, error) {
	var r recipe.Record
	if err := common.ParseJSONBytes(data, &r); err != nil {
		return recipe.Record{}, common.NewParseError("recipe import", err)
	}
	if strings.TrimSpace(r.Text) == "" {
		return recipe.Record{}, common.NewValidationError("imported recipe has no text")
	}
	if r.Servings < 1 {
		return recipe.Record{}, common.NewValidationError("imported recipe servings must be positive")
	}
	return r, nil
}
