package catalog

import (
	"testing"
	"time"

	"recipe-adapter/internal/infrastructure/config"
	"recipe-adapter/internal/pkg/common"
)

func cacheConfig(maxSize int, ttl time.Duration) *config.Config {
	return &config.Config{
		Cache: config.CacheConfig{
			Enabled:         true,
			MaxSize:         maxSize,
			TTL:             ttl,
			CleanupInterval: time.Minute,
		},
	}
}

func sampleRecords() []common.SubstitutionRecord {
	return []common.SubstitutionRecord{
		{
			OriginalIngredient:   "butter",
			SubstituteIngredient: "olive oil",
			SuccessRate:          0.9,
		},
	}
}

func TestCacheSetAndGet(t *testing.T) {
	m := NewCacheManager(cacheConfig(10, time.Minute))
	defer m.Close()

	if err := m.Set("Butter", sampleRecords()); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// 鍵不分大小寫
	recs, ok := m.Get("butter")
	if !ok {
		t.Fatal("expected a cache hit")
	}
	if len(recs) != 1 || recs[0].SubstituteIngredient != "olive oil" {
		t.Errorf("unexpected cached records: %+v", recs)
	}

	hits, misses, _ := m.Stats()
	if hits != 1 || misses != 0 {
		t.Errorf("stats hits=%d misses=%d, want 1/0", hits, misses)
	}
}

func TestCacheMiss(t *testing.T) {
	m := NewCacheManager(cacheConfig(10, time.Minute))
	defer m.Close()

	if _, ok := m.Get("unknown"); ok {
		t.Error("expected a miss for an unknown key")
	}
	_, misses, _ := m.Stats()
	if misses != 1 {
		t.Errorf("misses = %d, want 1", misses)
	}
}

func TestCacheExpiry(t *testing.T) {
	m := NewCacheManager(cacheConfig(10, 10*time.Millisecond))
	defer m.Close()

	if err := m.Set("butter", sampleRecords()); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(30 * time.Millisecond)

	if _, ok := m.Get("butter"); ok {
		t.Error("expected the entry to have expired")
	}
}

func TestCacheEvictsWhenFull(t *testing.T) {
	m := NewCacheManager(cacheConfig(2, time.Minute))
	defer m.Close()

	if err := m.Set("butter", sampleRecords()); err != nil {
		t.Fatalf("Set butter: %v", err)
	}
	if err := m.Set("milk", sampleRecords()); err != nil {
		t.Fatalf("Set milk: %v", err)
	}

	// 容量已滿，第三筆應觸發 LRU 淘汰而非報錯
	if err := m.Set("egg", sampleRecords()); err != nil {
		t.Fatalf("Set egg after eviction: %v", err)
	}
	if _, ok := m.Get("egg"); !ok {
		t.Error("newest entry should be cached after eviction")
	}
}

func TestCacheReturnsCopy(t *testing.T) {
	m := NewCacheManager(cacheConfig(10, time.Minute))
	defer m.Close()

	if err := m.Set("butter", sampleRecords()); err != nil {
		t.Fatalf("Set: %v", err)
	}
	recs, _ := m.Get("butter")
	recs[0].SubstituteIngredient = "mutated"

	again, _ := m.Get("butter")
	if again[0].SubstituteIngredient == "mutated" {
		t.Error("cache must return independent copies")
	}
}

func TestNilCacheManagerIsDisabled(t *testing.T) {
	var m *CacheManager

	if _, ok := m.Get("butter"); ok {
		t.Error("nil manager must always miss")
	}
	if err := m.Set("butter", sampleRecords()); err != nil {
		t.Errorf("nil manager Set should be a no-op, got %v", err)
	}
	m.Close() // 不可 panic
}

func TestDisabledCacheReturnsNilManager(t *testing.T) {
	cfg := &config.Config{Cache: config.CacheConfig{Enabled: false}}
	if m := NewCacheManager(cfg); m != nil {
		t.Error("disabled cache should yield a nil manager")
	}
}
