package handlers

import (
	"net/http"

	"recipe-studio/internal/core/nutrition"
	"recipe-studio/internal/core/shopping"
	"recipe-studio/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// NutritionRequest ingredients 以逗號分隔
type NutritionRequest struct {
	Ingredients string `json:"ingredients"`
	Servings    int    `json:"servings" binding:"required,min=1,max=10"`
}

// NutritionResponse 每份的概略營養素
type NutritionResponse struct {
	PerServing nutrition.Macros `json:"per_serving"`
	Bars       nutrition.Bars   `json:"bars"`
	Servings   int              `json:"servings"`
}

// AnalyzeNutrition 以對照表估算每份營養素
func (h *Handler) AnalyzeNutrition(c *gin.Context) {
	var req NutritionRequest
	if !bindJSON(c, &req) {
		return
	}

	ings := nutrition.ParseIngredientList(req.Ingredients)
	if len(ings) == 0 {
		writeError(c, common.NewValidationError("Enter ingredients."))
		return
	}

	per := nutrition.Estimate(ings, req.Servings)
	c.JSON(http.StatusOK, NutritionResponse{
		PerServing: per,
		Bars:       per.Bars(),
		Servings:   req.Servings,
	})
}

// ShoppingListRequest 以食譜標題（第一行）選取
type ShoppingListRequest struct {
	Titles []string `json:"titles" binding:"required,min=1"`
}

// ShoppingListResponse 依首次出現順序排列
type ShoppingListResponse struct {
	Items []shopping.Item `json:"items"`
}

func (h *Handler) buildShoppingList(c *gin.Context) (*shopping.List, bool) {
	var req ShoppingListRequest
	if !bindJSON(c, &req) {
		return nil, false
	}

	records, err := h.store.Load()
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	return shopping.Extract(shopping.SelectByTitle(records, req.Titles)), true
}

// ShoppingList 從選取的已儲存食譜擷取購物清單
func (h *Handler) ShoppingList(c *gin.Context) {
	list, ok := h.buildShoppingList(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ShoppingListResponse{Items: list.Items()})
}

// ShoppingListText 購物清單純文字下載，每行一項
func (h *Handler) ShoppingListText(c *gin.Context) {
	list, ok := h.buildShoppingList(c)
	if !ok {
		return
	}
	attachment(c, "shopping_list.txt", "text/plain; charset=utf-8", []byte(list.Text()))
}
