package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"testing"

	"recipe-studio/internal/core/recipe"
	"recipe-studio/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func manyLines(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i+1)
	}
	return strings.Join(lines, "\n")
}

func TestRenderPagesSinglePage(t *testing.T) {
	data, err := RenderPages("Tomato Pasta", "Tomato Pasta\n200 g pasta\nBoil and serve.")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.Equal(t, 1, layout("Tomato Pasta", "a\nb").PageCount())
}

func TestRenderPagesOverflowAddsPages(t *testing.T) {
	// 第一頁可容納 47 行內文
	assert.Equal(t, 1, layout("t", manyLines(47)).PageCount())
	assert.Equal(t, 2, layout("t", manyLines(48)).PageCount())
	assert.GreaterOrEqual(t, layout("t", manyLines(300)).PageCount(), 6)

	data, err := RenderPages("Weekly Meal Plan", manyLines(120))
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestRenderPagesAcceptsAnyText(t *testing.T) {
	inputs := []string{
		"",
		"\n\n\n",
		"Crème brûlée — 5 min ✓",
		strings.Repeat("very long line without wrapping ", 50),
		"windows\r\nline endings\r\n",
	}
	for _, in := range inputs {
		data, err := RenderPages("Recipe", in)
		require.NoError(t, err)
		assert.NotEmpty(t, data)
	}
}

func TestRenderTable(t *testing.T) {
	data, err := RenderTable([]Row{
		{Label: "Monday", Text: "Pasta, with tomato"},
		{Label: "Tuesday", Text: "Soup\nwith \"croutons\""},
	})
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Day", "Recipe"},
		{"Monday", "Pasta, with tomato"},
		{"Tuesday", "Soup\nwith \"croutons\""},
	}, records)
	assert.True(t, strings.HasPrefix(string(data), "Day,Recipe\n"))
}

func TestRenderTableEmpty(t *testing.T) {
	data, err := RenderTable(nil)
	require.NoError(t, err)
	assert.Equal(t, "Day,Recipe\n", string(data))
}

func TestMealPlanOrdering(t *testing.T) {
	plan := recipe.MealPlan{
		"Sunday":  "Roast",
		"Monday":  "Pasta",
		"Tuesday": "Soup",
	}

	rows := MealPlanRows(plan)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Monday", "Tuesday", "Sunday"}, []string{rows[0].Label, rows[1].Label, rows[2].Label})

	assert.Equal(t, "Monday:\nPasta\n\nTuesday:\nSoup\n\nSunday:\nRoast", MealPlanText(plan))
}

func TestRecordRoundTrip(t *testing.T) {
	r := recipe.Record{
		IngredientsInput: "tomato, pasta, garlic",
		Cuisine:          "Italian",
		Diet:             "Vegan",
		Servings:         3,
		Text:             "Garlic Pasta\n\"quoted\" & <b>",
		Timestamp:        1712345678.123456,
	}

	data, err := ExportRecord(r)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"ingredients_input": "tomato, pasta, garlic"`)

	back, err := ImportRecord(data)
	require.NoError(t, err)
	assert.Equal(t, r, back)
}

func TestImportRecordErrors(t *testing.T) {
	_, err := ImportRecord([]byte("not json"))
	assert.True(t, common.IsParseError(err))

	_, err = ImportRecord([]byte(`{"text":"","servings":2}`))
	assert.True(t, common.IsValidationError(err))

	_, err = ImportRecord([]byte(`{"text":"Soup","servings":0}`))
	assert.True(t, common.IsValidationError(err))
}
