package shopping

import (
	"testing"

	"recipe-studio/internal/core/recipe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func phrases(l *List) []string {
	var out []string
	for _, it := range l.Items() {
		out = append(out, it.Phrase)
	}
	return out
}

func TestExtractSplitsUnitLines(t *testing.T) {
	l := Extract([]string{"2 cups tomato, 1 onion"})

	assert.Equal(t, 1, l.Count("2 cups tomato"))
	assert.Equal(t, 1, l.Count("1 onion"))
}

func TestExtractSplitsOnWordAnd(t *testing.T) {
	l := Extract([]string{"1 tbsp salt and 2 tsp pepper"})
	assert.Equal(t, []string{"1 tbsp salt", "2 tsp pepper"}, phrases(l))

	// "and" 只在完整單字時切分
	l = Extract([]string{"1 cup sandwich bread"})
	assert.Equal(t, []string{"1 cup sandwich bread"}, phrases(l))
}

func TestExtractDropsShortFragments(t *testing.T) {
	l := Extract([]string{"a, bb, ccc"})
	assert.Equal(t, []string{"ccc"}, phrases(l))

	// 長度以字元計，兩個中文字的片段同樣丟棄
	l = Extract([]string{"牛肉, 雞蛋, 1 cup 麵粉, 番茄醬"})
	assert.Equal(t, []string{"1 cup 麵粉", "番茄醬"}, phrases(l))
}

func TestExtractKeywordLineKeptWhole(t *testing.T) {
	l := Extract([]string{"  Fresh tomato soup  "})
	assert.Equal(t, []string{"Fresh tomato soup"}, phrases(l))
}

func TestExtractIgnoresOtherLines(t *testing.T) {
	l := Extract([]string{"Boil water.\nStir well\n\n"})
	assert.Zero(t, l.Len())
}

func TestExtractLetterGCountsAsUnit(t *testing.T) {
	// 含字母 g 的行走單位分支，整行（無逗號）成為一個片語
	l := Extract([]string{"Bring to a boil"})
	assert.Equal(t, []string{"Bring to a boil"}, phrases(l))
}

func TestExtractCountsAcrossRecipesAndKeepsOrder(t *testing.T) {
	texts := []string{
		"Quick Supper\n200 g pasta, 1 onion\nserve hot",
		"Soup\n1 onion, 2 cups broth\r\n",
	}
	l := Extract(texts)

	assert.Equal(t, []string{"200 g pasta", "1 onion", "2 cups broth"}, phrases(l))
	assert.Equal(t, 2, l.Count("1 onion"))
	assert.Equal(t, 1, l.Count("200 g pasta"))
	assert.Equal(t, 0, l.Count("Soup"))
}

func TestExtractDoesNotMergeSynonyms(t *testing.T) {
	l := Extract([]string{"2 onions, onion"})
	assert.Equal(t, 1, l.Count("2 onions"))
	assert.Equal(t, 1, l.Count("onion"))
}

func TestExtractIdempotent(t *testing.T) {
	texts := []string{"Chicken Rice\n1 cup rice, 200 g chicken and 1 egg\nchop garlic"}
	a := Extract(texts)
	b := Extract(texts)
	assert.Equal(t, a.Items(), b.Items())
}

func TestListText(t *testing.T) {
	l := NewList()
	l.Add("1 onion")
	l.Add("2 cups rice")
	l.Add("1 onion")
	assert.Equal(t, "1 onion\n2 cups rice", l.Text())
	require.Len(t, l.Items(), 2)
	assert.Equal(t, 2, l.Items()[0].Count)
}

func TestSelectByTitle(t *testing.T) {
	records := []recipe.Record{
		{Text: "Tomato Pasta\n200 g pasta"},
		{Text: "Curry\n1 onion"},
		{Text: "Tomato Pasta\nduplicate"},
	}

	got := SelectByTitle(records, []string{"Tomato Pasta"})
	assert.Equal(t, []string{"Tomato Pasta\n200 g pasta", "Tomato Pasta\nduplicate"}, got)

	assert.Empty(t, SelectByTitle(records, nil))
}
