package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"recipe-studio/internal/core/recipe"
)

// Row 表格中的一列
type Row struct {
	Label string
	Text  string
}

// RenderTable 輸出兩欄 CSV，表頭為 Day,Recipe
func RenderTable(rows []Row) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Day", "Recipe"}); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, r := range rows {
		if err := w.Write([]string{r.Label, r.Text}); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// MealPlanRows 依週一到週日排列菜單
func MealPlanRows(plan recipe.MealPlan) []Row {
	entries := plan.Entries()
	rows := make([]Row, len(entries))
	for i, e := range entries {
		rows[i] = Row{Label: e.Day, Text: e.Text}
	}
	return rows
}

// MealPlanText 菜單 PDF 的內文，每天一段
func MealPlanText(plan recipe.MealPlan) string {
	entries := plan.Entries()
	blocks := make([]string, len(entries))
	for i, e := range entries {
		blocks[i] = fmt.Sprintf("%s:\n%s", e.Day, e.Text)
	}
	return strings.Join(blocks, "\n\n")
}
