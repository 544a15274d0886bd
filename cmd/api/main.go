package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipe-studio/internal/api"
	"recipe-studio/internal/core/ai/gemini"
	aiservice "recipe-studio/internal/core/ai/service"
	"recipe-studio/internal/core/recipe"
	"recipe-studio/internal/core/session"
	"recipe-studio/internal/core/store"
	"recipe-studio/internal/infrastructure/config"
	"recipe-studio/internal/metrics"
	"recipe-studio/internal/pkg/common"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	// 載入 .env
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	// 載入設定
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel, cfg.LogDir); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("載入設定",
		zap.String("gemini_key_masked", config.MaskAPIKey(cfg.Gemini.APIKey)),
		zap.String("recipe_model", cfg.Gemini.RecipeModel),
		zap.String("chat_model", cfg.Gemini.ChatModel),
		zap.String("data_dir", cfg.Store.DataDir),
	)

	// 指標
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// 生成閘道
	gateway := aiservice.NewService(cfg.Gemini, gemini.NewClient(cfg.Gemini), m)
	defer gateway.Close()

	// 食譜庫
	recipeStore, err := store.New(cfg.Store.Path(), m)
	if err != nil {
		common.LogFatal("Failed to initialize recipe store", zap.Error(err))
	}

	// 工作階段
	sessions, err := session.NewStore(cfg, m)
	if err != nil {
		common.LogFatal("Failed to initialize session store", zap.Error(err))
	}
	defer sessions.Close()

	// 設置路由
	router := api.SetupRouter(api.Dependencies{
		Config:   cfg,
		Recipes:  recipe.NewService(gateway),
		Store:    recipeStore,
		Sessions: sessions,
		Metrics:  m,
	})

	// 設置 HTTP 服務器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 啟動服務器
	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Int("port", cfg.Server.Port),
			zap.String("store", recipeStore.Path()),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			common.LogFatal("Failed to start server", zap.Error(err))
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	// 設置關閉超時
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
	}

	common.LogInfo("Server exited")
}
