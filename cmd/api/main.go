package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipe-adapter/internal/api"
	"recipe-adapter/internal/core/catalog"
	"recipe-adapter/internal/infrastructure/config"
	"recipe-adapter/internal/pkg/common"

	"github.com/joho/godotenv"
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
	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	// 使用 logger 記錄啟動信息
	common.LogInfo("載入設定",
		zap.String("catalog_source", cfg.Catalog.Source),
		zap.Int("engine_skill_buffer", cfg.Engine.SkillBuffer),
		zap.Int("engine_max_substitutions", cfg.Engine.MaxSubstitutions),
	)

	// 建立目錄來源
	source, err := newCatalogSource(cfg)
	if err != nil {
		common.LogFatal("Failed to initialize catalog source", zap.Error(err))
	}

	// 初始化快取
	cacheManager := catalog.NewCacheManager(cfg)
	// 只在快取開啟但初始化失敗時才 Fatal
	if cfg.Cache.Enabled && cacheManager == nil {
		common.LogFatal("Failed to initialize cache manager")
	}

	// 初始化目錄服務（含查詢工作池）
	catalogSvc := catalog.NewService(cfg, source, cacheManager)
	defer catalogSvc.Close()

	// 設置路由
	router, err := api.SetupRouter(cfg, catalogSvc, cacheManager)
	if err != nil {
		common.LogError("Failed to setup router", zap.Error(err))
		os.Exit(1)
	}

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
			zap.Bool("debug", cfg.App.Debug),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			common.LogError("Failed to start server",
				zap.Error(err),
			)
			os.Exit(1)
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	// 設置關閉超時
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown",
			zap.Error(err),
		)
		os.Exit(1)
	}

	common.LogInfo("Server exited")
}

// newCatalogSource 依設定選擇目錄來源
func newCatalogSource(cfg *config.Config) (catalog.Source, error) {
	switch cfg.Catalog.Source {
	case "memory":
		return catalog.NewMemorySource(), nil
	case "redis":
		return catalog.NewRedisSource(cfg.Catalog.RedisAddr)
	case "remote":
		return catalog.NewRemoteSource(cfg.Catalog.RemoteURL, cfg.Catalog.Timeout), nil
	default:
		return nil, fmt.Errorf("unknown catalog source: %s", cfg.Catalog.Source)
	}
}
