package catalog

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"recipe-adapter/internal/infrastructure/config"
	"recipe-adapter/internal/pkg/common"
)

// countingSource 記錄實際查詢次數，用於驗證快取
type countingSource struct {
	inner Source
	calls int64
}

func (s *countingSource) FetchSubstitutions(ctx context.Context, ingredient string) ([]common.SubstitutionRecord, error) {
	atomic.AddInt64(&s.calls, 1)
	return s.inner.FetchSubstitutions(ctx, ingredient)
}

func serviceConfig(cacheEnabled bool) *config.Config {
	return &config.Config{
		Engine: config.DefaultEngine(),
		Cache: config.CacheConfig{
			Enabled:         cacheEnabled,
			MaxSize:         100,
			TTL:             time.Minute,
			CleanupInterval: time.Minute,
		},
		Queue: config.QueueConfig{Workers: 2, MaxSize: 16},
	}
}

func TestServiceFetchThroughPool(t *testing.T) {
	cfg := serviceConfig(false)
	svc := NewService(cfg, NewMemorySource(), nil)
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	recs, err := svc.FetchSubstitutions(ctx, "Butter")
	if err != nil {
		t.Fatalf("FetchSubstitutions: %v", err)
	}
	if len(recs) == 0 {
		t.Fatal("expected seeded records for butter")
	}
	for _, rec := range recs {
		if rec.OriginalIngredient != "butter" {
			t.Errorf("record for %q returned on a butter lookup", rec.OriginalIngredient)
		}
	}

	status := svc.QueueStatus()
	if status.ProcessedCount != 1 {
		t.Errorf("processed count = %d, want 1", status.ProcessedCount)
	}
	if status.Workers != 2 {
		t.Errorf("workers = %d, want 2", status.Workers)
	}
}

func TestServiceEmptyIngredient(t *testing.T) {
	cfg := serviceConfig(false)
	svc := NewService(cfg, NewMemorySource(), nil)
	defer svc.Close()

	recs, err := svc.FetchSubstitutions(context.Background(), "   ")
	if err != nil {
		t.Fatalf("FetchSubstitutions: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("got %d records for a blank ingredient, want 0", len(recs))
	}
}

func TestServiceCachesResults(t *testing.T) {
	cfg := serviceConfig(true)
	source := &countingSource{inner: NewMemorySource()}
	svc := NewService(cfg, source, NewCacheManager(cfg))
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := svc.FetchSubstitutions(ctx, "butter"); err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	if _, err := svc.FetchSubstitutions(ctx, "butter"); err != nil {
		t.Fatalf("second fetch: %v", err)
	}

	if calls := atomic.LoadInt64(&source.calls); calls != 1 {
		t.Errorf("source queried %d times, want 1 (second hit from cache)", calls)
	}
}

func TestServiceContextCancellation(t *testing.T) {
	cfg := serviceConfig(false)
	svc := NewService(cfg, NewMemorySource(), nil)
	defer svc.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.FetchSubstitutions(ctx, "butter"); err == nil {
		t.Error("expected an error for a cancelled context")
	}
}

func TestNormalizeIngredient(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Butter", "butter"},
		{"  Heavy Cream  ", "heavy cream"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeIngredient(tt.in); got != tt.want {
			t.Errorf("NormalizeIngredient(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
