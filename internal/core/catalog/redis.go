package catalog

import (
	"context"
	"fmt"

	"recipe-adapter/internal/pkg/common"

	"github.com/go-redis/redis/v8"
)

// redis 鍵格式：目錄由外部策展流程寫入，引擎只讀
const redisKeyPrefix = "catalog:substitution:"

// RedisSource 以 Redis 持久化的替代目錄
type RedisSource struct {
	client *redis.Client
}

// NewRedisSource 建立 Redis 目錄來源並測試連線
func NewRedisSource(addr string) (*RedisSource, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	// 測試連接
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisSource{client: client}, nil
}

// FetchSubstitutions 讀取單一食材的替代紀錄
// 查無鍵視為空結果而非錯誤；內容異常交由 CoerceRecords 回填
func (s *RedisSource) FetchSubstitutions(ctx context.Context, ingredient string) ([]common.SubstitutionRecord, error) {
	key := redisKeyPrefix + NormalizeIngredient(ingredient)

	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return []common.SubstitutionRecord{}, nil
		}
		return nil, fmt.Errorf("%w: %s: %v", common.ErrCatalogUnavailable, key, err)
	}

	recs, err := CoerceRecords(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog entry %s: %w", key, err)
	}
	return recs, nil
}

// Close 關閉 Redis 連線
func (s *RedisSource) Close() error {
	return s.client.Close()
}
