package handlers

import (
	"net/http"

	"recipe-studio/internal/core/export"
	"recipe-studio/internal/core/recipe"
	"recipe-studio/internal/core/store"
	"recipe-studio/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// GenerateRecipeRequest 食譜生成表單
type GenerateRecipeRequest struct {
	Ingredients string `json:"ingredients" binding:"required"`
	Cuisine     string `json:"cuisine"`
	Diet        string `json:"diet"`
	Servings    int    `json:"servings" binding:"required,min=1,max=8"`
}

// RecipeResponse 單筆食譜
type RecipeResponse struct {
	Title  string        `json:"title"`
	Recipe recipe.Record `json:"recipe"`
}

// SavedRecipe 已儲存的食譜與其位置
type SavedRecipe struct {
	Index  int           `json:"index"`
	Title  string        `json:"title"`
	Recipe recipe.Record `json:"recipe"`
}

// GenerateRecipe 生成食譜並記為工作階段的最近一次生成
func (h *Handler) GenerateRecipe(c *gin.Context) {
	var req GenerateRecipeRequest
	if !bindJSON(c, &req) {
		return
	}

	sess := currentSession(c)
	rec, err := h.recipes.GenerateRecipe(c.Request.Context(), sess.APIKey, recipe.Request{
		Ingredients: req.Ingredients,
		Cuisine:     req.Cuisine,
		Diet:        req.Diet,
		Servings:    req.Servings,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	sess.LastGenerated = rec
	if !h.saveSession(c, sess) {
		return
	}

	c.JSON(http.StatusOK, RecipeResponse{Title: rec.Title(), Recipe: *rec})
}

// lastGenerated 沒有最近一次生成時回應 404
func lastGenerated(c *gin.Context) (*recipe.Record, bool) {
	rec := currentSession(c).LastGenerated
	if rec == nil {
		writeError(c, common.ErrNothingToExport)
		return nil, false
	}
	return rec, true
}

// LastRecipe 預覽最近一次生成
func (h *Handler) LastRecipe(c *gin.Context) {
	rec, ok := lastGenerated(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, RecipeResponse{Title: rec.Title(), Recipe: *rec})
}

// SaveLastRecipe 將最近一次生成存入食譜庫
func (h *Handler) SaveLastRecipe(c *gin.Context) {
	rec, ok := lastGenerated(c)
	if !ok {
		return
	}
	if err := h.store.Add(*rec); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, RecipeResponse{Title: rec.Title(), Recipe: *rec})
}

// LastRecipePDF 最近一次生成的 PDF
func (h *Handler) LastRecipePDF(c *gin.Context) {
	rec, ok := lastGenerated(c)
	if !ok {
		return
	}
	recipePDF(c, *rec)
}

// LastRecipeJSON 最近一次生成的 JSON
func (h *Handler) LastRecipeJSON(c *gin.Context) {
	rec, ok := lastGenerated(c)
	if !ok {
		return
	}
	recipeJSON(c, *rec)
}

// ListRecipes 列出已儲存的食譜，q 為不分大小寫的關鍵字
func (h *Handler) ListRecipes(c *gin.Context) {
	hits, err := h.store.Search(c.Query("q"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"recipes": savedRecipes(hits),
		"count":   len(hits),
	})
}

func savedRecipes(hits []store.Indexed) []SavedRecipe {
	out := make([]SavedRecipe, len(hits))
	for i, h := range hits {
		out[i] = SavedRecipe{Index: h.Index, Title: h.Record.Title(), Recipe: h.Record}
	}
	return out
}

// SavedRecipePDF 已儲存食譜的 PDF
func (h *Handler) SavedRecipePDF(c *gin.Context) {
	rec, ok := h.savedRecipe(c)
	if !ok {
		return
	}
	recipePDF(c, rec)
}

// SavedRecipeJSON 已儲存食譜的 JSON
func (h *Handler) SavedRecipeJSON(c *gin.Context) {
	rec, ok := h.savedRecipe(c)
	if !ok {
		return
	}
	recipeJSON(c, rec)
}

func (h *Handler) savedRecipe(c *gin.Context) (recipe.Record, bool) {
	idx, ok := indexParam(c)
	if !ok {
		return recipe.Record{}, false
	}
	rec, err := h.store.Get(idx)
	if err != nil {
		writeError(c, err)
		return recipe.Record{}, false
	}
	return rec, true
}

// DeleteRecipe 依位置刪除；超出範圍不視為錯誤
func (h *Handler) DeleteRecipe(c *gin.Context) {
	idx, ok := indexParam(c)
	if !ok {
		return
	}
	if err := h.store.Delete(idx); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ClearRecipes 刪除整個食譜庫
func (h *Handler) ClearRecipes(c *gin.Context) {
	existed, err := h.store.Clear()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cleared": existed})
}

// ImportRecipe 匯入 ExportRecord 格式的 JSON 並存入食譜庫
func (h *Handler) ImportRecipe(c *gin.Context) {
	data, err := c.GetRawData()
	if err != nil {
		writeError(c, common.NewValidationError("failed to read request body"))
		return
	}

	rec, err := export.ImportRecord(data)
	if err != nil {
		if common.IsParseError(err) {
			c.AbortWithStatusJSON(http.StatusBadRequest, common.ErrorResponse{
				Code:    common.ErrCodeParse,
				Message: err.Error(),
			})
			return
		}
		writeError(c, err)
		return
	}

	if err := h.store.Add(rec); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, RecipeResponse{Title: rec.Title(), Recipe: rec})
}

func recipePDF(c *gin.Context, rec recipe.Record) {
	data, err := export.RenderPages(rec.Title(), rec.Text)
	if err != nil {
		writeError(c, err)
		return
	}
	attachment(c, "recipe.pdf", "application/pdf", data)
}

func recipeJSON(c *gin.Context, rec recipe.Record) {
	data, err := export.ExportRecord(rec)
	if err != nil {
		writeError(c, err)
		return
	}
	attachment(c, "recipe.json", "application/json", data)
}
