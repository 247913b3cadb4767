package adaptation

import (
	"context"
	"fmt"
	"time"

	"recipe-adapter/internal/core/catalog"
	"recipe-adapter/internal/core/technique"
	"recipe-adapter/internal/infrastructure/config"
	"recipe-adapter/internal/pkg/common"
)

// testConfig 測試用設定：快取關閉、小工作池、預設引擎策略
func testConfig() *config.Config {
	return &config.Config{
		Engine: config.DefaultEngine(),
		Cache:  config.CacheConfig{Enabled: false},
		Queue:  config.QueueConfig{Workers: 2, MaxSize: 16},
	}
}

// newTestService 以記憶體目錄建立引擎
func newTestService(source catalog.Source) (*Service, *catalog.Service) {
	cfg := testConfig()
	if source == nil {
		source = catalog.NewMemorySource()
	}
	catalogSvc := catalog.NewService(cfg, source, nil)
	return NewService(cfg.Engine, catalogSvc, technique.NewKnowledgeBase()), catalogSvc
}

// failingSource 模擬查詢必定失敗的目錄來源
type failingSource struct{}

func (failingSource) FetchSubstitutions(_ context.Context, ingredient string) ([]common.SubstitutionRecord, error) {
	return nil, fmt.Errorf("catalog unavailable for %s", ingredient)
}

// partialSource 指定食材失敗、其餘交給種子目錄
type partialSource struct {
	inner   catalog.Source
	failFor string
}

func (s partialSource) FetchSubstitutions(ctx context.Context, ingredient string) ([]common.SubstitutionRecord, error) {
	if catalog.NormalizeIngredient(ingredient) == s.failFor {
		return nil, fmt.Errorf("catalog unavailable for %s", ingredient)
	}
	return s.inner.FetchSubstitutions(ctx, ingredient)
}

func testContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}
