package recipe

import (
	"fmt"
	"strings"
)

// BuildRecipePrompt 由食材與偏好組出食譜 prompt
func BuildRecipePrompt(req Request) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Create a detailed recipe using these ingredients: %s.\n", strings.TrimSpace(req.Ingredients)))
	sb.WriteString(fmt.Sprintf("Cuisine: %s.\n", req.Cuisine))
	sb.WriteString(fmt.Sprintf("Dietary preference: %s.\n", req.Diet))
	sb.WriteString(fmt.Sprintf("Servings: %d.\n", req.Servings))
	sb.WriteString("Please include:\n")
	sb.WriteString("- Recipe name\n")
	sb.WriteString("- Short description\n")
	sb.WriteString("- Complete ingredients list with quantities for the total dish\n")
	sb.WriteString("- Step-by-step preparation\n")
	sb.WriteString("- Estimated cooking time\n")
	sb.WriteString("- Serving suggestions\n")
	sb.WriteString("Format the output clearly.\n")
	return sb.String()
}

// BuildDayPrompt 單日菜單 prompt
func BuildDayPrompt(day string, servings int) string {
	return fmt.Sprintf("Create a %s meal (dish name and short recipe) suitable for %d servings. Keep it concise with ingredients and 3-4 steps.", day, servings)
}

// BuildChatPrompt 問答 prompt
func BuildChatPrompt(question string) string {
	return fmt.Sprintf("You are a helpful chef. Answer briefly and clearly: %s", strings.TrimSpace(question))
}
