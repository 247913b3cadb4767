package catalog

import (
	"context"
	"time"

	"recipe-adapter/internal/infrastructure/config"
	"recipe-adapter/internal/pkg/common"
)

// Service 替代目錄存取服務
// 組合來源、快取與查詢工作池；引擎經由此服務讀取目錄
type Service struct {
	config *config.Config
	source Source
	cache  *CacheManager
	pool   *lookupPool
}

// NewService 創建目錄服務
// cache 可為 nil（快取關閉時）
func NewService(cfg *config.Config, source Source, cache *CacheManager) *Service {
	return &Service{
		config: cfg,
		source: source,
		cache:  cache,
		pool:   newLookupPool(cfg, source),
	}
}

// FetchSubstitutions 查詢單一食材的替代紀錄
// 單筆失敗只影響該食材；呼叫端將錯誤視為「無建議」
func (s *Service) FetchSubstitutions(ctx context.Context, ingredient string) ([]common.SubstitutionRecord, error) {
	key := NormalizeIngredient(ingredient)
	if key == "" {
		return []common.SubstitutionRecord{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if records, ok := s.cache.Get(key); ok {
		return records, nil
	}

	start := time.Now()
	resultCh, err := s.pool.enqueue(ctx, key)
	if err != nil {
		common.LogCatalogFetch(key, time.Since(start), err)
		return nil, err
	}

	select {
	case res := <-resultCh:
		common.LogCatalogFetch(key, time.Since(start), res.err)
		if res.err != nil {
			return nil, res.err
		}
		if res.records == nil {
			res.records = []common.SubstitutionRecord{}
		}
		_ = s.cache.Set(key, res.records)
		return res.records, nil
	case <-ctx.Done():
		common.LogCatalogFetch(key, time.Since(start), ctx.Err())
		return nil, ctx.Err()
	}
}

// QueueStatus 回傳查詢工作池狀態（健康檢查用）
func (s *Service) QueueStatus() *QueueStatus {
	return s.pool.status()
}

// Close 關閉工作池與快取
func (s *Service) Close() {
	s.pool.close()
	s.cache.Close()
}
