package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics 性能指标收集器
type Metrics struct {
	// 合成相关指标
	SynthRequests     int64 // 总请求数
	SynthSuccess      int64 // 成功请求数
	SynthErrors       int64 // 失败请求数
	SynthTotalLatency int64 // 总延迟(纳秒)
	SynthMaxLatency   int64 // 最大延迟(纳秒)
	SynthMinLatency   int64 // 最小延迟(纳秒)

	// 分类相关指标：按 provider 结果计数
	ClassifyRemote   int64 // 远程分类成功
	ClassifyFallback int64 // 各级本地回退
	ClassifyErrors   int64 // 向外失败

	// 缓存相关指标
	CacheHits   int64
	CacheMisses int64

	mu sync.RWMutex // 用于 min/max 更新
}

// GlobalMetrics 全局指标实例
var GlobalMetrics = &Metrics{
	SynthMinLatency: 1<<63 - 1,
}

// RecordSynthesis 记录一次合成请求
func (m *Metrics) RecordSynthesis(latency time.Duration, err error) {
	atomic.AddInt64(&m.SynthRequests, 1)

	latencyNs := latency.Nanoseconds()
	atomic.AddInt64(&m.SynthTotalLatency, latencyNs)

	if err != nil {
		atomic.AddInt64(&m.SynthErrors, 1)
	} else {
		atomic.AddInt64(&m.SynthSuccess, 1)
	}

	m.mu.Lock()
	if latencyNs > m.SynthMaxLatency {
		m.SynthMaxLatency = latencyNs
	}
	if latencyNs < m.SynthMinLatency {
		m.SynthMinLatency = latencyNs
	}
	m.mu.Unlock()
}

// RecordClassification 记录一次分类结果
func (m *Metrics) RecordClassification(provider string, err error) {
	switch {
	case err != nil:
		atomic.AddInt64(&m.ClassifyErrors, 1)
	case provider == "openai":
		atomic.AddInt64(&m.ClassifyRemote, 1)
	default:
		atomic.AddInt64(&m.ClassifyFallback, 1)
	}
}

// RecordCacheHit 记录缓存命中
func (m *Metrics) RecordCacheHit() {
	atomic.AddInt64(&m.CacheHits, 1)
}

// RecordCacheMiss 记录缓存未命中
func (m *Metrics) RecordCacheMiss() {
	atomic.AddInt64(&m.CacheMisses, 1)
}

// MetricsSnapshot 指标快照
type MetricsSnapshot struct {
	SynthRequests    int64         `json:"synth_requests"`
	SynthSuccess     int64         `json:"synth_success"`
	SynthErrors      int64         `json:"synth_errors"`
	SuccessRate      float64       `json:"success_rate"`
	AvgLatency       time.Duration `json:"avg_latency"`
	MaxLatency       time.Duration `json:"max_latency"`
	MinLatency       time.Duration `json:"min_latency"`
	ClassifyRemote   int64         `json:"classify_remote"`
	ClassifyFallback int64         `json:"classify_fallback"`
	ClassifyErrors   int64         `json:"classify_errors"`
	CacheHits        int64         `json:"cache_hits"`
	CacheMisses      int64         `json:"cache_misses"`
	CacheHitRate     float64       `json:"cache_hit_rate"`
	Timestamp        time.Time     `json:"timestamp"`
}

// GetSnapshot 获取指标快照
func (m *Metrics) GetSnapshot() MetricsSnapshot {
	requests := atomic.LoadInt64(&m.SynthRequests)
	success := atomic.LoadInt64(&m.SynthSuccess)
	errCount := atomic.LoadInt64(&m.SynthErrors)
	totalLatency := atomic.LoadInt64(&m.SynthTotalLatency)
	cacheHits := atomic.LoadInt64(&m.CacheHits)
	cacheMisses := atomic.LoadInt64(&m.CacheMisses)

	m.mu.RLock()
	maxLatency := m.SynthMaxLatency
	minLatency := m.SynthMinLatency
	m.mu.RUnlock()

	// 如果没有请求,设置 min 为 0
	if requests == 0 {
		minLatency = 0
	}

	avgLatency := int64(0)
	if requests > 0 {
		avgLatency = totalLatency / requests
	}

	cacheHitRate := 0.0
	totalCacheOps := cacheHits + cacheMisses
	if totalCacheOps > 0 {
		cacheHitRate = float64(cacheHits) / float64(totalCacheOps) * 100
	}

	successRate := 0.0
	if requests > 0 {
		successRate = float64(success) / float64(requests) * 100
	}

	return MetricsSnapshot{
		SynthRequests:    requests,
		SynthSuccess:     success,
		SynthErrors:      errCount,
		SuccessRate:      successRate,
		AvgLatency:       time.Duration(avgLatency),
		MaxLatency:       time.Duration(maxLatency),
		MinLatency:       time.Duration(minLatency),
		ClassifyRemote:   atomic.LoadInt64(&m.ClassifyRemote),
		ClassifyFallback: atomic.LoadInt64(&m.ClassifyFallback),
		ClassifyErrors:   atomic.LoadInt64(&m.ClassifyErrors),
		CacheHits:        cacheHits,
		CacheMisses:      cacheMisses,
		CacheHitRate:     cacheHitRate,
		Timestamp:        time.Now(),
	}
}

// Reset 重置所有指标
func (m *Metrics) Reset() {
	atomic.StoreInt64(&m.SynthRequests, 0)
	atomic.StoreInt64(&m.SynthSuccess, 0)
	atomic.StoreInt64(&m.SynthErrors, 0)
	atomic.StoreInt64(&m.SynthTotalLatency, 0)
	atomic.StoreInt64(&m.ClassifyRemote, 0)
	atomic.StoreInt64(&m.ClassifyFallback, 0)
	atomic.StoreInt64(&m.ClassifyErrors, 0)
	atomic.StoreInt64(&m.CacheHits, 0)
	atomic.StoreInt64(&m.CacheMisses, 0)

	m.mu.Lock()
	m.SynthMaxLatency = 0
	m.SynthMinLatency = 1<<63 - 1
	m.mu.Unlock()
}
