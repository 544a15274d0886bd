// Package nutrition 以固定對照表粗略估算每份營養素。
//
// 這是啟發式估算：每個食材假設約 100g，只看第一個單字，
// 查不到的食材一律加上預設的小量數值。結果只供參考。
package nutrition

import (
	"strconv"
	"strings"
)

// Macros 熱量與三大營養素
type Macros struct {
	Calories float64 `json:"cal"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Carb     float64 `json:"carb"`
}

func (m Macros) add(o Macros) Macros {
	return Macros{
		Calories: m.Calories + o.Calories,
		Protein:  m.Protein + o.Protein,
		Fat:      m.Fat + o.Fat,
		Carb:     m.Carb + o.Carb,
	}
}

// table 每 100g 的參考值
var table = map[string]Macros{
	"chicken":  {Calories: 165, Protein: 31, Fat: 3.6, Carb: 0},
	"rice":     {Calories: 130, Protein: 2.4, Fat: 0.2, Carb: 28},
	"pasta":    {Calories: 131, Protein: 5, Fat: 1.1, Carb: 25},
	"tomato":   {Calories: 18, Protein: 0.9, Fat: 0.2, Carb: 3.9},
	"onion":    {Calories: 40, Protein: 1.1, Fat: 0.1, Carb: 9.3},
	"potato":   {Calories: 77, Protein: 2, Fat: 0.1, Carb: 17},
	"cheese":   {Calories: 402, Protein: 25, Fat: 33, Carb: 1.3},
	"egg":      {Calories: 155, Protein: 13, Fat: 11, Carb: 1.1},
	"milk":     {Calories: 42, Protein: 3.4, Fat: 1, Carb: 5},
	"butter":   {Calories: 717, Protein: 0.9, Fat: 81, Carb: 0.1},
	"broccoli": {Calories: 34, Protein: 2.8, Fat: 0.4, Carb: 7},
	"quinoa":   {Calories: 120, Protein: 4.4, Fat: 1.9, Carb: 21},
	"beans":    {Calories: 347, Protein: 21, Fat: 1.2, Carb: 63},
	"avocado":  {Calories: 160, Protein: 2, Fat: 15, Carb: 9},
}

// unknown 查無資料時的預設貢獻
var unknown = Macros{Calories: 20, Protein: 0.5, Fat: 0.1, Carb: 1}

// Lookup 回傳對照表中的項目
func Lookup(name string) (Macros, bool) {
	m, ok := table[strings.ToLower(name)]
	return m, ok
}

// Estimate 估算每份營養素；servings < 1 視為 1，結果取到小數一位
func Estimate(ingredients []string, servings int) Macros {
	var total Macros
	for _, ing := range ingredients {
		fields := strings.Fields(strings.ToLower(ing))
		if len(fields) == 0 {
			total = total.add(unknown)
			continue
		}
		if m, ok := Lookup(fields[0]); ok {
			total = total.add(m)
		} else {
			total = total.add(unknown)
		}
	}

	div := float64(max(1, servings))
	return Macros{
		Calories: round1(total.Calories / div),
		Protein:  round1(total.Protein / div),
		Fat:      round1(total.Fat / div),
		Carb:     round1(total.Carb / div),
	}
}

// ParseIngredientList 以逗號切分輸入並去除空項
func ParseIngredientList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Bars 顯示用的百分比條：蛋白質×3、脂肪×2、碳水×1，上限 100
type Bars struct {
	Protein int `json:"protein"`
	Fat     int `json:"fat"`
	Carb    int `json:"carb"`
}

// Bars 計算顯示用的百分比條
func (m Macros) Bars() Bars {
	return Bars{
		Protein: min(100, int(m.Protein*3)),
		Fat:     min(100, int(m.Fat*2)),
		Carb:    min(100, int(m.Carb)),
	}
}

// round1 依實際十進位值取到小數一位，0.45000000000000001 進位為 0.5
func round1(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	if err != nil {
		return v
	}
	return r
}
