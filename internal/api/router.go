package api

import (
	"net/http"
	"time"

	"recipe-studio/internal/api/handlers"
	"recipe-studio/internal/api/handlers/health"
	"recipe-studio/internal/api/middleware"
	"recipe-studio/internal/core/recipe"
	"recipe-studio/internal/core/session"
	"recipe-studio/internal/core/store"
	"recipe-studio/internal/infrastructure/config"
	"recipe-studio/internal/metrics"
	"recipe-studio/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Dependencies 路由需要的服務
type Dependencies struct {
	Config   *config.Config
	Recipes  *recipe.Service
	Store    *store.Store
	Sessions session.Store
	Metrics  *metrics.Metrics
}

// SetupRouter 設置路由
func SetupRouter(deps Dependencies) *gin.Engine {
	cfg := deps.Config
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug && gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(requestid.New()) // 自動生成請求 ID
	router.Use(middleware.Logger())
	router.Use(deps.Metrics.Middleware())

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-ID", middleware.SessionHeader},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition", "X-Request-ID", middleware.SessionHeader},
		MaxAge:        12 * time.Hour,
	}))

	// 健康檢查路由
	healthHandler := health.NewHandler(cfg, deps.Store.Path())
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)
	router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	h := handlers.NewHandler(deps.Recipes, deps.Store, deps.Sessions, cfg.Gemini.APIKey)

	// API 路由組
	api := router.Group("/api/v1")
	api.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))
	if cfg.RateLimit.Enabled {
		api.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	api.Use(middleware.Deduplication(cfg.DedupWindow, "/api/v1/recipes/last/save", "/api/v1/recipes/import"))
	api.Use(middleware.Timeout(cfg.Server.RequestTimeout))
	{
		api.POST("/session", h.CreateSession)

		// 食譜庫，不需要工作階段
		api.GET("/recipes", h.ListRecipes)
		api.DELETE("/recipes", h.ClearRecipes)
		api.POST("/recipes/import", h.ImportRecipe)
		api.GET("/recipes/:index/pdf", h.SavedRecipePDF)
		api.GET("/recipes/:index/json", h.SavedRecipeJSON)
		api.DELETE("/recipes/:index", h.DeleteRecipe)

		api.POST("/nutrition", h.AnalyzeNutrition)
		api.POST("/shopping-list", h.ShoppingList)
		api.POST("/shopping-list/txt", h.ShoppingListText)
	}

	sess := api.Group("")
	sess.Use(middleware.Session(deps.Sessions, cfg.Gemini.APIKey))
	{
		sess.GET("/session", h.GetSession)
		sess.DELETE("/session", h.EndSession)
		sess.PUT("/settings/api-key", h.SetAPIKey)

		sess.POST("/recipes/generate", h.GenerateRecipe)
		sess.GET("/recipes/last", h.LastRecipe)
		sess.POST("/recipes/last/save", h.SaveLastRecipe)
		sess.GET("/recipes/last/pdf", h.LastRecipePDF)
		sess.GET("/recipes/last/json", h.LastRecipeJSON)

		sess.POST("/mealplan", h.GenerateMealPlan)
		sess.GET("/mealplan", h.GetMealPlan)
		sess.GET("/mealplan/csv", h.MealPlanCSV)
		sess.GET("/mealplan/pdf", h.MealPlanPDF)

		sess.POST("/chat", h.Chat)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, common.ErrorResponse{
			Code:    common.ErrCodeNotFound,
			Message: "route not found",
		})
	})

	common.LogInfo("Router setup completed successfully",
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
		zap.Duration("request_timeout", cfg.Server.RequestTimeout),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
		zap.String("session_backend", cfg.Session.Backend),
	)

	return router
}
