package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	adaptationHandler "recipe-adapter/internal/api/handlers/adaptation"
	"recipe-adapter/internal/api/handlers/health"
	"recipe-adapter/internal/api/middleware"
	coreAdaptation "recipe-adapter/internal/core/adaptation"
	"recipe-adapter/internal/core/catalog"
	"recipe-adapter/internal/core/technique"
	"recipe-adapter/internal/infrastructure/config"
	"recipe-adapter/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 超時設置
	timeoutDuration = 30 * time.Second
	// 請求體大小限制 (2MB)，食譜加檔案的 JSON 不該更大
	maxBodySize = 2 << 20
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, catalogSvc *catalog.Service, cacheManager *catalog.CacheManager) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New()) // 自動生成請求 ID

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(maxBodySize))

	// 請求去重與限流
	router.Use(middleware.Deduplication(cfg))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	common.LogInfo("Initializing services",
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.Int("queue_workers", cfg.Queue.Workers),
		zap.String("catalog_source", cfg.Catalog.Source),
		zap.Duration("timeout", timeoutDuration),
	)

	// 初始化引擎服務
	kb := technique.NewKnowledgeBase()
	engineSvc := coreAdaptation.NewService(cfg.Engine, catalogSvc, kb)
	if engineSvc == nil {
		common.LogError("Failed to initialize adaptation service")
		return nil, fmt.Errorf("failed to initialize adaptation service")
	}

	// 全局中間件：設置超時和服務
	router.Use(func(c *gin.Context) {
		// 設置請求超時
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		// 設置配置與服務
		c.Set("config", cfg)
		c.Set("catalog_service", catalogSvc)
		c.Set("cache_manager", cacheManager)

		// 處理請求
		c.Next()

		// 檢查是否超時
		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  "REQUEST_TIMEOUT",
				"details": gin.H{
					"timeout": timeoutDuration.String(),
				},
			})
			c.Abort()
			return
		}
	})

	// 未知路由統一回 404
	router.NoRoute(func(c *gin.Context) {
		common.WriteErrorResponse(c.Writer, http.StatusNotFound, "Route not found")
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	{
		handler := adaptationHandler.NewHandler(engineSvc)

		// 食譜調整相關路由
		adaptGroup := api.Group("/adaptation")
		{
			// 食材替代建議
			adaptGroup.POST("/substitutions", handler.HandleSubstitutions)

			// 指令依技能改寫
			adaptGroup.POST("/instructions", handler.HandleInstructions)

			// 難度評估
			adaptGroup.POST("/difficulty", handler.HandleDifficulty)

			// 烹飪洞察
			adaptGroup.POST("/insights", handler.HandleInsights)

			// 技法查詢
			adaptGroup.GET("/techniques/:name", handler.HandleTechnique)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.String("catalog_source", cfg.Catalog.Source),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
