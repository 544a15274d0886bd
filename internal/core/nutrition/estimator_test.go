package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateKnownIngredient(t *testing.T) {
	got := Estimate([]string{"chicken"}, 1)
	assert.InDelta(t, 165.0, got.Calories, 0.05)
	assert.InDelta(t, 31.0, got.Protein, 0.05)
	assert.InDelta(t, 3.6, got.Fat, 0.05)
	assert.InDelta(t, 0.0, got.Carb, 0.05)
}

func TestEstimateRoundsDecimalValue(t *testing.T) {
	// 3.6/8 實際略大於 0.45，進位為 0.5
	got := Estimate([]string{"chicken"}, 8)
	assert.Equal(t, Macros{Calories: 20.6, Protein: 3.9, Fat: 0.5, Carb: 0}, got)
}

func TestEstimateUsesFirstTokenCaseInsensitive(t *testing.T) {
	got := Estimate([]string{"  Chicken breast, diced"}, 1)
	assert.InDelta(t, 165.0, got.Calories, 0.05)

	// "2 cups rice" 第一個單字是 "2"，查不到
	got = Estimate([]string{"2 cups rice"}, 1)
	assert.Equal(t, unknown, got)
}

func TestEstimateUnknownAndBlankFallBackToDefault(t *testing.T) {
	assert.Equal(t, Macros{Calories: 20, Protein: 0.5, Fat: 0.1, Carb: 1}, Estimate([]string{"saffron"}, 1))
	assert.Equal(t, unknown, Estimate([]string{"   "}, 1))
}

func TestEstimateEmptyIsZero(t *testing.T) {
	for _, servings := range []int{1, 2, 7} {
		assert.Equal(t, Macros{}, Estimate(nil, servings))
		assert.Equal(t, Macros{}, Estimate([]string{}, servings))
	}
}

func TestEstimateClampsServings(t *testing.T) {
	one := Estimate([]string{"rice"}, 1)
	assert.Equal(t, one, Estimate([]string{"rice"}, 0))
	assert.Equal(t, one, Estimate([]string{"rice"}, -3))
}

func TestEstimateHalvesWhenServingsDouble(t *testing.T) {
	lists := [][]string{
		{"chicken", "rice", "tomato"},
		{"cheese", "pasta", "butter", "garlic"},
		{"avocado"},
		{"mystery", "beans", "egg", "milk"},
	}
	for _, ings := range lists {
		for _, s := range []int{1, 2, 3} {
			a := Estimate(ings, s)
			b := Estimate(ings, s*2)
			assert.InDelta(t, a.Calories/2, b.Calories, 0.1)
			assert.InDelta(t, a.Protein/2, b.Protein, 0.1)
			assert.InDelta(t, a.Fat/2, b.Fat, 0.1)
			assert.InDelta(t, a.Carb/2, b.Carb, 0.1)
		}
	}
}

func TestEstimateNonNegative(t *testing.T) {
	got := Estimate([]string{"chicken", "x", "", "butter", "broccoli"}, 4)
	assert.GreaterOrEqual(t, got.Calories, 0.0)
	assert.GreaterOrEqual(t, got.Protein, 0.0)
	assert.GreaterOrEqual(t, got.Fat, 0.0)
	assert.GreaterOrEqual(t, got.Carb, 0.0)
}

func TestEstimateRoundsToOneDecimal(t *testing.T) {
	// (165 + 130 + 18) / 3 = 104.333...
	got := Estimate([]string{"chicken", "rice", "tomato"}, 3)
	assert.Equal(t, 104.3, got.Calories)
}

func TestParseIngredientList(t *testing.T) {
	assert.Equal(t, []string{"chicken", "rice", "tomato"}, ParseIngredientList(" chicken, rice,,tomato , "))
	assert.Empty(t, ParseIngredientList(" , ,"))
}

func TestBars(t *testing.T) {
	b := Macros{Protein: 10, Fat: 60, Carb: 150}.Bars()
	assert.Equal(t, Bars{Protein: 30, Fat: 100, Carb: 100}, b)
}

func TestLookup(t *testing.T) {
	m, ok := Lookup("Egg")
	assert.True(t, ok)
	assert.Equal(t, 155.0, m.Calories)

	_, ok = Lookup("dragonfruit")
	assert.False(t, ok)
}
