package catalog

import (
	"context"
	"fmt"
	"sync/atomic"

	"recipe-adapter/internal/infrastructure/config"
	"recipe-adapter/internal/pkg/common"

	"go.uber.org/zap"
)

// lookupRequest 工作池中的單筆目錄查詢
type lookupRequest struct {
	ctx        context.Context
	ingredient string
	result     chan lookupResult
}

// lookupResult 查詢結果
type lookupResult struct {
	records []common.SubstitutionRecord
	err     error
}

// QueueStatus 工作池狀態
type QueueStatus struct {
	QueueLength    int `json:"queue_length"`
	ProcessedCount int `json:"processed_count"`
	MaxQueueSize   int `json:"max_queue_size"`
	Workers        int `json:"workers"`
}

// lookupPool 有界的目錄查詢工作池
// 每個食材一筆獨立查詢；上游可併發送入，完成順序不保證
type lookupPool struct {
	config    *config.Config
	queue     chan *lookupRequest
	done      chan struct{}
	processed int64
}

// newLookupPool 建立工作池並啟動 worker
func newLookupPool(cfg *config.Config, source Source) *lookupPool {
	p := &lookupPool{
		config: cfg,
		queue:  make(chan *lookupRequest, cfg.Queue.MaxSize),
		done:   make(chan struct{}),
	}

	for i := 0; i < cfg.Queue.Workers; i++ {
		go p.worker(source)
	}

	return p
}

// worker 持續消化查詢請求直到池關閉
func (p *lookupPool) worker(source Source) {
	for {
		select {
		case req, ok := <-p.queue:
			if !ok {
				return
			}
			records, err := source.FetchSubstitutions(req.ctx, req.ingredient)
			atomic.AddInt64(&p.processed, 1)
			req.result <- lookupResult{records: records, err: err}
		case <-p.done:
			return
		}
	}
}

// enqueue 將查詢加入隊列，回傳結果通道
func (p *lookupPool) enqueue(ctx context.Context, ingredient string) (chan lookupResult, error) {
	// 檢查隊列容量
	if len(p.queue) >= p.config.Queue.MaxSize {
		return nil, fmt.Errorf("lookup queue is full")
	}

	req := &lookupRequest{
		ctx:        ctx,
		ingredient: ingredient,
		result:     make(chan lookupResult, 1),
	}

	select {
	case p.queue <- req:
		common.LogDebug("目錄查詢已排入隊列",
			zap.String("食材", ingredient),
			zap.Int("queue_length", len(p.queue)),
		)
		return req.result, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-p.done:
		return nil, fmt.Errorf("lookup pool is closed")
	}
}

// status 回傳工作池狀態
func (p *lookupPool) status() *QueueStatus {
	return &QueueStatus{
		QueueLength:    len(p.queue),
		ProcessedCount: int(atomic.LoadInt64(&p.processed)),
		MaxQueueSize:   p.config.Queue.MaxSize,
		Workers:        p.config.Queue.Workers,
	}
}

// close 關閉工作池
func (p *lookupPool) close() {
	close(p.done)
}
