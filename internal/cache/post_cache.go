package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/gin-blog/pkg/logger"
)

const similarKeyPrefix = "blog:similar:"

// PostCache 缓存文章详情页的相似文章 ID 列表。
// nil 的 *PostCache 或 nil client 视为缓存关闭，所有读取都是 miss。
type PostCache struct {
	client *redis.Client
	ttl    time.Duration

	hits   atomic.Int64
	misses atomic.Int64
}

// NewPostCache builds a cache on top of the given client; client may be nil.
func NewPostCache(client *redis.Client, ttl time.Duration) *PostCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &PostCache{client: client, ttl: ttl}
}

func similarKey(postID uint) string {
	return fmt.Sprintf("%s%d", similarKeyPrefix, postID)
}

func (c *PostCache) enabled() bool { return c != nil && c.client != nil }

// SimilarIDs 读取缓存；第二个返回值表示是否命中
func (c *PostCache) SimilarIDs(ctx context.Context, postID uint) ([]uint, bool) {
	if !c.enabled() {
		return nil, false
	}
	data, err := c.client.Get(ctx, similarKey(postID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("similar cache get failed", zap.Uint("post_id", postID), zap.Error(err))
		}
		c.misses.Add(1)
		return nil, false
	}
	var ids []uint
	if err := json.Unmarshal(data, &ids); err != nil {
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return ids, true
}

// SetSimilarIDs 写入缓存，失败只记日志
func (c *PostCache) SetSimilarIDs(ctx context.Context, postID uint, ids []uint) {
	if !c.enabled() {
		return
	}
	if ids == nil {
		ids = []uint{}
	}
	payload, err := json.Marshal(ids)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, similarKey(postID), payload, c.ttl).Err(); err != nil {
		logger.Warn("similar cache set failed", zap.Uint("post_id", postID), zap.Error(err))
	}
}

// FlushSimilar 清空全部相似文章缓存（新文章发布后标签关系发生变化）
func (c *PostCache) FlushSimilar(ctx context.Context) error {
	if !c.enabled() {
		return nil
	}
	var keys []string
	iter := c.client.Scan(ctx, 0, similarKeyPrefix+"*", 500).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	pipe := c.client.Pipeline()
	for _, k := range keys {
		pipe.Del(ctx, k)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// Counters reports cache hits and misses since start.
func (c *PostCache) Counters() (hits, misses int64) {
	if c == nil {
		return 0, 0
	}
	return c.hits.Load(), c.misses.Load()
}
