package handlers

import (
	"net/http"

	"recipe-studio/internal/core/export"
	"recipe-studio/internal/core/recipe"
	"recipe-studio/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// MealPlanRequest 一週菜單
type MealPlanRequest struct {
	Servings int `json:"servings" binding:"required,min=1,max=6"`
}

// MealPlanResponse 依週一到週日排列
type MealPlanResponse struct {
	Days []recipe.DayEntry `json:"days"`
}

// GenerateMealPlan 逐日生成一週菜單並取代工作階段中的舊菜單
func (h *Handler) GenerateMealPlan(c *gin.Context) {
	var req MealPlanRequest
	if !bindJSON(c, &req) {
		return
	}

	sess := currentSession(c)
	plan, err := h.recipes.GenerateMealPlan(c.Request.Context(), sess.APIKey, req.Servings)
	if err != nil {
		writeError(c, err)
		return
	}

	sess.MealPlan = plan
	if !h.saveSession(c, sess) {
		return
	}
	c.JSON(http.StatusOK, MealPlanResponse{Days: plan.Entries()})
}

// GetMealPlan 目前的菜單，沒有時為空陣列
func (h *Handler) GetMealPlan(c *gin.Context) {
	c.JSON(http.StatusOK, MealPlanResponse{Days: currentSession(c).MealPlan.Entries()})
}

func mealPlan(c *gin.Context) (recipe.MealPlan, bool) {
	plan := currentSession(c).MealPlan
	if len(plan) == 0 {
		writeError(c, common.ErrNothingToExport)
		return nil, false
	}
	return plan, true
}

// MealPlanCSV 下載 Day,Recipe 兩欄的 CSV
func (h *Handler) MealPlanCSV(c *gin.Context) {
	plan, ok := mealPlan(c)
	if !ok {
		return
	}
	data, err := export.RenderTable(export.MealPlanRows(plan))
	if err != nil {
		writeError(c, err)
		return
	}
	attachment(c, "meal_plan.csv", "text/csv; charset=utf-8", data)
}

// MealPlanPDF 下載菜單 PDF
func (h *Handler) MealPlanPDF(c *gin.Context) {
	plan, ok := mealPlan(c)
	if !ok {
		return
	}
	data, err := export.RenderPages("Weekly Meal Plan", export.MealPlanText(plan))
	if err != nil {
		writeError(c, err)
		return
	}
	attachment(c, "meal_plan.pdf", "application/pdf", data)
}
