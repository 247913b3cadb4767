package catalog

import (
	"sync"
	"time"

	"recipe-adapter/internal/infrastructure/config"
	"recipe-adapter/internal/pkg/common"

	"go.uber.org/zap"
)

// CacheManager 目錄查詢結果的快取管理器
type CacheManager struct {
	config *config.Config
	mu     sync.Mutex
	store  map[string]cacheEntry
	stop   chan struct{}
	stats  cacheStats
}

// cacheEntry 緩存條目
type cacheEntry struct {
	records     []common.SubstitutionRecord
	expiresAt   time.Time
	createdAt   time.Time
	lastAccess  time.Time
	accessCount int
}

// cacheStats 緩存統計
type cacheStats struct {
	hits      int64
	misses    int64
	evictions int64
	errors    int64
}

// NewCacheManager 創建新的緩存管理器
// 快取關閉時回傳 nil，呼叫端以 nil 判斷略過快取
func NewCacheManager(cfg *config.Config) *CacheManager {
	if !cfg.Cache.Enabled {
		common.LogInfo("Cache disabled")
		return nil
	}

	m := &CacheManager{
		config: cfg,
		store:  make(map[string]cacheEntry),
		stop:   make(chan struct{}),
	}

	// 啟動清理過期緩存的協程
	go m.startCleanup()

	common.LogInfo("快取管理員已初始化",
		zap.Int("最大容量", cfg.Cache.MaxSize),
		zap.Duration("存活時間", cfg.Cache.TTL),
		zap.Duration("清理間隔", cfg.Cache.CleanupInterval),
	)

	return m
}

// Get 獲取某食材的快取紀錄，未命中回傳 false
func (m *CacheManager) Get(ingredient string) ([]common.SubstitutionRecord, bool) {
	if m == nil {
		return nil, false
	}

	key := NormalizeIngredient(ingredient)

	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.store[key]
	if !exists {
		m.stats.misses++
		common.LogCacheMiss("catalog", key)
		return nil, false
	}

	// 檢查是否過期
	if time.Now().After(entry.expiresAt) {
		delete(m.store, key)
		m.stats.evictions++
		m.stats.misses++
		common.LogInfo("快取已過期", zap.String("鍵", key))
		return nil, false
	}

	// 更新訪問統計
	entry.lastAccess = time.Now()
	entry.accessCount++
	m.store[key] = entry
	m.stats.hits++
	common.LogCacheHit("catalog", key)

	out := make([]common.SubstitutionRecord, len(entry.records))
	copy(out, entry.records)
	return out, true
}

// Set 寫入某食材的快取紀錄
func (m *CacheManager) Set(ingredient string, records []common.SubstitutionRecord) error {
	if m == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// 檢查緩存大小
	if len(m.store) >= m.config.Cache.MaxSize {
		// 先清理過期項目
		evicted := m.cleanupLocked()
		common.LogInfo("快取清理執行", zap.Int("清理數量", evicted))

		// 如果仍然超過大小限制，執行 LRU 清理
		if len(m.store) >= m.config.Cache.MaxSize {
			m.evictLRULocked()
		}

		// 如果仍然超過大小限制，返回錯誤
		if len(m.store) >= m.config.Cache.MaxSize {
			m.stats.errors++
			common.LogWarn("快取已滿", zap.Int("目前容量", len(m.store)))
			return common.ErrCacheFull
		}
	}

	key := NormalizeIngredient(ingredient)
	stored := make([]common.SubstitutionRecord, len(records))
	copy(stored, records)

	now := time.Now()
	m.store[key] = cacheEntry{
		records:    stored,
		expiresAt:  now.Add(m.config.Cache.TTL),
		createdAt:  now,
		lastAccess: now,
	}

	return nil
}

// startCleanup 啟動清理過期緩存的協程
func (m *CacheManager) startCleanup() {
	ticker := time.NewTicker(m.config.Cache.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.mu.Lock()
			m.cleanupLocked()
			m.mu.Unlock()
		case <-m.stop:
			return
		}
	}
}

// cleanupLocked 清理過期的緩存，呼叫端需持鎖
func (m *CacheManager) cleanupLocked() int {
	now := time.Now()
	count := 0

	for key, entry := range m.store {
		if now.After(entry.expiresAt) {
			delete(m.store, key)
			count++
			m.stats.evictions++
		}
	}

	return count
}

// evictLRULocked 執行 LRU 清理，呼叫端需持鎖
func (m *CacheManager) evictLRULocked() {
	var oldestKey string
	var oldestAccess time.Time
	var lowestAccessCount int

	// 找到最少訪問的項目
	for key, entry := range m.store {
		if oldestKey == "" ||
			entry.accessCount < lowestAccessCount ||
			(entry.accessCount == lowestAccessCount && entry.lastAccess.Before(oldestAccess)) {
			oldestKey = key
			oldestAccess = entry.lastAccess
			lowestAccessCount = entry.accessCount
		}
	}

	if oldestKey != "" {
		delete(m.store, oldestKey)
		m.stats.evictions++
	}
}

// Stats 回傳命中與淘汰統計
func (m *CacheManager) Stats() (hits, misses, evictions int64) {
	if m == nil {
		return 0, 0, 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats.hits, m.stats.misses, m.stats.evictions
}

// Close 停止清理協程
func (m *CacheManager) Close() {
	if m == nil {
		return
	}
	close(m.stop)
}
