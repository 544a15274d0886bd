// Package shopping 從食譜文字中以關鍵字啟發式擷取購物清單。
//
// 沒有文法解析也沒有正規化："2 onions" 與 "onion" 是兩個不同項目。
// 單位關鍵字 "g" 會命中任何含字母 g 的行，這是既有行為。
package shopping

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"recipe-studio/internal/core/recipe"
)

var (
	unitKeywords       = []string{"cup", "tsp", "tbsp", "g", "kg", "ml", "slice", "pieces", "pinch"}
	ingredientKeywords = []string{"tomato", "onion", "garlic", "chicken", "rice", "pasta", "cheese", "egg"}

	splitPattern = regexp.MustCompile(`,|\band\b`)
)

// Item 清單中的一個片語與出現次數
type Item struct {
	Phrase string `json:"phrase"`
	Count  int    `json:"count"`
}

// List 保留首次出現順序的片語計數
type List struct {
	items []Item
	index map[string]int
}

// NewList 創建空清單
func NewList() *List {
	return &List{index: make(map[string]int)}
}

// Add 片語計數加一，首次出現時附加到尾端
func (l *List) Add(phrase string) {
	if i, ok := l.index[phrase]; ok {
		l.items[i].Count++
		return
	}
	l.index[phrase] = len(l.items)
	l.items = append(l.items, Item{Phrase: phrase, Count: 1})
}

// Items 依首次出現順序回傳所有項目
func (l *List) Items() []Item {
	out := make([]Item, len(l.items))
	copy(out, l.items)
	return out
}

// Count 回傳片語次數
func (l *List) Count(phrase string) int {
	if i, ok := l.index[phrase]; ok {
		return l.items[i].Count
	}
	return 0
}

// Len 項目數
func (l *List) Len() int {
	return len(l.items)
}

// Text 每行一個片語，供純文字下載
func (l *List) Text() string {
	phrases := make([]string, len(l.items))
	for i, it := range l.items {
		phrases[i] = it.Phrase
	}
	return strings.Join(phrases, "\n")
}

// Extract 逐行掃描文字並累計候選片語
func Extract(texts []string) *List {
	list := NewList()
	for _, text := range texts {
		for _, line := range strings.Split(text, "\n") {
			for _, phrase := range candidates(strings.TrimRight(line, "\r")) {
				list.Add(phrase)
			}
		}
	}
	return list
}

// candidates 單行的候選片語；片段長度以字元計
func candidates(line string) []string {
	lower := strings.ToLower(line)

	if containsAny(lower, unitKeywords) || strings.Contains(line, ",") {
		var out []string
		for _, p := range splitPattern.Split(line, -1) {
			if p = strings.TrimSpace(p); utf8.RuneCountInString(p) > 2 {
				out = append(out, p)
			}
		}
		return out
	}

	if containsAny(lower, ingredientKeywords) {
		if p := strings.TrimSpace(line); p != "" {
			return []string{p}
		}
	}
	return nil
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// SelectByTitle 依儲存順序取出標題在選單中的食譜文字
func SelectByTitle(records []recipe.Record, titles []string) []string {
	selected := make(map[string]bool, len(titles))
	for _, t := range titles {
		selected[t] = true
	}

	var texts []string
	for _, r := range records {
		if selected[r.Title()] {
			texts = append(texts, r.Text)
		}
	}
	return texts
}
