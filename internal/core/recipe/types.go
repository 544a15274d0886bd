package recipe

import (
	"strings"
	"time"
)

// Record 一筆生成（並可能已儲存）的食譜，含生成參數與時間戳
type Record struct {
	IngredientsInput string  `json:"ingredients_input"`
	Cuisine          string  `json:"cuisine"`
	Diet             string  `json:"diet"`
	Servings         int     `json:"servings"`
	Text             string  `json:"text"`
	Timestamp        float64 `json:"timestamp"`
}

// Title 回傳食譜文字的第一行，空白時為 "Recipe"
func (r Record) Title() string {
	if r.Text == "" {
		return "Recipe"
	}
	line, _, _ := strings.Cut(r.Text, "\n")
	return strings.TrimRight(line, "\r")
}

// Cuisines 可選的菜系
var Cuisines = []string{"Any", "Indian", "Italian", "Mexican", "Chinese", "American", "Other"}

// Diets 可選的飲食偏好
var Diets = []string{"Any", "Vegetarian", "Vegan", "Non-Vegetarian", "Keto", "Gluten-Free"}

// Days 一週七天，固定順序
var Days = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// ValidCuisine 檢查菜系是否在列舉內
func ValidCuisine(c string) bool {
	return contains(Cuisines, c)
}

// ValidDiet 檢查飲食偏好是否在列舉內
func ValidDiet(d string) bool {
	return contains(Diets, d)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// Request 食譜生成參數
type Request struct {
	Ingredients string
	Cuisine     string
	Diet        string
	Servings    int
}

// MealPlan 一週菜單，day → 生成文字
type MealPlan map[string]string

// Entries 依週一到週日的順序回傳已有的項目
func (p MealPlan) Entries() []DayEntry {
	entries := make([]DayEntry, 0, len(p))
	for _, d := range Days {
		if text, ok := p[d]; ok {
			entries = append(entries, DayEntry{Day: d, Text: text})
		}
	}
	return entries
}

// DayEntry 菜單中的一天
type DayEntry struct {
	Day  string `json:"day"`
	Text string `json:"recipe"`
}

// Now 以浮點秒數表示目前時間
func Now() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Second)
}
