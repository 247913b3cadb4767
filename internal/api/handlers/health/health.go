package health

import (
	"net/http"
	"runtime"
	"time"

	"recipe-adapter/internal/core/catalog"
	"recipe-adapter/internal/infrastructure/config"
	"recipe-adapter/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime"`
	Queue     *catalog.QueueStatus   `json:"queue,omitempty"`
	Cache     *CacheStatus           `json:"cache,omitempty"`
}

// CacheStatus 目錄快取統計
type CacheStatus struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
}

// HealthCheck 健康檢查處理器
func HealthCheck(c *gin.Context) {
	// 獲取配置
	cfg, exists := c.Get("config")
	if !exists {
		common.LogError("Configuration not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Configuration not found",
		})
		return
	}
	config, ok := cfg.(*config.Config)
	if !ok {
		common.LogError("Invalid configuration type in context")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Invalid configuration type",
		})
		return
	}

	// 獲取運行時信息
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	// 構建響應
	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   config.App.Version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
	}

	// 附上目錄服務狀態（若已注入）
	if svc, exists := c.Get("catalog_service"); exists {
		if catalogSvc, ok := svc.(*catalog.Service); ok {
			response.Queue = catalogSvc.QueueStatus()
		}
	}
	if mgr, exists := c.Get("cache_manager"); exists {
		if cacheManager, ok := mgr.(*catalog.CacheManager); ok && cacheManager != nil {
			hits, misses, evictions := cacheManager.Stats()
			response.Cache = &CacheStatus{Hits: hits, Misses: misses, Evictions: evictions}
		}
	}

	// 記錄請求
	common.LogInfo("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 就緒檢查處理器
func ReadinessCheck(c *gin.Context) {
	// 目錄工作池存在即視為就緒
	if svc, exists := c.Get("catalog_service"); exists {
		if catalogSvc, ok := svc.(*catalog.Service); ok && catalogSvc.QueueStatus() != nil {
			c.JSON(http.StatusOK, gin.H{
				"status": "ready",
			})
			return
		}
	}
	c.JSON(http.StatusServiceUnavailable, gin.H{
		"status": "not ready",
	})
}

// LivenessCheck 存活檢查處理器
func LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
