package tts

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync/atomic"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"hearmenow/internal/metrics"
	"hearmenow/internal/models"
)

// CacheStats 缓存统计信息
type CacheStats struct {
	Hits      int64   `json:"hits"`
	Misses    int64   `json:"misses"`
	HitRate   float64 `json:"hit_rate"`
	ItemCount int     `json:"item_count"`
	TotalSize int64   `json:"total_size_bytes"`
}

// cachingService wraps a tts.Service to add a read-through audio cache.
type cachingService struct {
	next         Service
	cache        *cache.Cache
	hits         int64
	misses       int64
	totalSize    int64 // 缓存总大小(字节)
	maxTotalSize int64 // 缓存最大总大小限制(字节)，0表示不限制
}

// NewCachingService creates a new caching service.
// maxTotalSize 参数是可选的，默认为0表示不限制缓存大小
func NewCachingService(next Service, defaultExpiration, cleanupInterval time.Duration, maxTotalSize ...int64) Service {
	var maxSize int64 = 0 // 默认不限制
	if len(maxTotalSize) > 0 {
		maxSize = maxTotalSize[0]
	}

	c := &cachingService{
		next:         next,
		cache:        cache.New(defaultExpiration, cleanupInterval),
		maxTotalSize: maxSize,
	}

	// 缓存项被删除时更新总大小统计
	c.cache.OnEvicted(func(key string, value interface{}) {
		if resp, ok := value.(*models.SynthesisResponse); ok {
			atomic.AddInt64(&c.totalSize, -int64(len(resp.AudioContent)))
		}
	})

	return c
}

// ListVoices forwards the call to the next service without caching.
func (s *cachingService) ListVoices(ctx context.Context) ([]models.Voice, error) {
	return s.next.ListVoices(ctx)
}

// Synthesize synthesizes speech, using the cache to store and retrieve results.
func (s *cachingService) Synthesize(ctx context.Context, req models.SynthesisRequest) (*models.SynthesisResponse, error) {
	key := s.generateCacheKey(req)

	if resp, found := s.cache.Get(key); found {
		atomic.AddInt64(&s.hits, 1)
		metrics.GlobalMetrics.RecordCacheHit()
		logrus.WithField("key", key).Debug("Cache hit")
		// 返回浅拷贝，缓存里的条目保持只读，避免并发请求间的写冲突
		result := *resp.(*models.SynthesisResponse)
		result.CacheHit = true
		return &result, nil
	}

	atomic.AddInt64(&s.misses, 1)
	metrics.GlobalMetrics.RecordCacheMiss()
	logrus.WithField("key", key).Debug("Cache miss")

	resp, err := s.next.Synthesize(ctx, req)
	if err != nil {
		return nil, err
	}

	// 如果设置了最大限制且添加此项会超过限制，则不缓存
	currentSize := atomic.LoadInt64(&s.totalSize)
	responseSize := int64(len(resp.AudioContent))
	if s.maxTotalSize > 0 && (currentSize+responseSize) > s.maxTotalSize {
		logrus.WithFields(logrus.Fields{
			"key":           key,
			"current_size":  currentSize,
			"response_size": responseSize,
			"max_size":      s.maxTotalSize,
		}).Debug("Skipping cache due to size limit")
		return resp, nil
	}

	s.cache.Set(key, resp, cache.DefaultExpiration)
	atomic.AddInt64(&s.totalSize, responseSize)

	return resp, nil
}

// generateCacheKey creates a unique SHA256 hash for a SynthesisRequest.
// 包含所有影响输出的参数：文本、归一化后的情感、声音和格式
func (s *cachingService) generateCacheKey(req models.SynthesisRequest) string {
	format := req.Format
	if format == "" {
		format = models.DefaultFormat
	}

	hash := sha256.New()
	hash.Write([]byte("text:"))
	hash.Write([]byte(req.Text))
	hash.Write([]byte("|emotion:"))
	hash.Write([]byte(req.EmotionLabel()))
	hash.Write([]byte("|voice:"))
	hash.Write([]byte(req.VoiceID))
	hash.Write([]byte("|format:"))
	hash.Write([]byte(format))

	return hex.EncodeToString(hash.Sum(nil))
}

// GetStats 获取缓存统计信息
func (s *cachingService) GetStats() CacheStats {
	hits := atomic.LoadInt64(&s.hits)
	misses := atomic.LoadInt64(&s.misses)
	total := hits + misses

	hitRate := 0.0
	if total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}

	return CacheStats{
		Hits:      hits,
		Misses:    misses,
		HitRate:   hitRate,
		ItemCount: s.cache.ItemCount(),
		TotalSize: atomic.LoadInt64(&s.totalSize),
	}
}

// ClearCache 清空缓存
func (s *cachingService) ClearCache() {
	s.cache.Flush()
	atomic.StoreInt64(&s.totalSize, 0)
	logrus.Info("Cache cleared")
}
