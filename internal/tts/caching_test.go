package tts

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"hearmenow/internal/metrics"
	"hearmenow/internal/models"
)

// countingService 记录被调用次数的假合成服务
type countingService struct {
	synthCalls int64
	voiceCalls int64
}

func (s *countingService) Synthesize(ctx context.Context, req models.SynthesisRequest) (*models.SynthesisResponse, error) {
	atomic.AddInt64(&s.synthCalls, 1)
	return &models.SynthesisResponse{
		AudioContent: []byte("audio-for-" + req.Text),
		ContentType:  models.DefaultFormat,
	}, nil
}

func (s *countingService) ListVoices(ctx context.Context) ([]models.Voice, error) {
	atomic.AddInt64(&s.voiceCalls, 1)
	return []models.Voice{{ID: "v1", Name: "Rachel", Category: "premade"}}, nil
}

func TestCachingServiceHitAndMiss(t *testing.T) {
	next := &countingService{}
	svc := NewCachingService(next, time.Minute, time.Minute)

	req := models.SynthesisRequest{Text: "hello", Emotion: "happy"}

	// 第一次调用未命中，穿透到下层
	resp1, err := svc.Synthesize(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, resp1.CacheHit)
	assert.EqualValues(t, 1, atomic.LoadInt64(&next.synthCalls))

	// 相同请求命中缓存
	resp2, err := svc.Synthesize(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, resp2.CacheHit)
	assert.Equal(t, resp1.AudioContent, resp2.AudioContent)
	assert.EqualValues(t, 1, atomic.LoadInt64(&next.synthCalls))
}

func TestCachingServiceKeyIncludesAllOutputAffectingFields(t *testing.T) {
	next := &countingService{}
	svc := NewCachingService(next, time.Minute, time.Minute)

	base := models.SynthesisRequest{Text: "hello", Emotion: "happy", VoiceID: "v1", Format: models.FormatMP3}
	_, err := svc.Synthesize(context.Background(), base)
	require.NoError(t, err)

	// 任一影响输出的字段变化都必须绕过缓存
	variants := []models.SynthesisRequest{
		{Text: "hello!", Emotion: "happy", VoiceID: "v1", Format: models.FormatMP3},
		{Text: "hello", Emotion: "sad", VoiceID: "v1", Format: models.FormatMP3},
		{Text: "hello", Emotion: "happy", VoiceID: "v2", Format: models.FormatMP3},
		{Text: "hello", Emotion: "happy", VoiceID: "v1", Format: models.FormatWAV},
	}
	for _, v := range variants {
		_, err := svc.Synthesize(context.Background(), v)
		require.NoError(t, err)
	}

	assert.EqualValues(t, 1+len(variants), atomic.LoadInt64(&next.synthCalls))
}

func TestCachingServiceNormalizesEmotionInKey(t *testing.T) {
	next := &countingService{}
	svc := NewCachingService(next, time.Minute, time.Minute)

	// 未知情感归一化为 neutral，和显式 neutral 共用缓存项
	_, err := svc.Synthesize(context.Background(), models.SynthesisRequest{Text: "hi", Emotion: "bewildered"})
	require.NoError(t, err)
	resp, err := svc.Synthesize(context.Background(), models.SynthesisRequest{Text: "hi", Emotion: "neutral"})
	require.NoError(t, err)

	assert.True(t, resp.CacheHit)
	assert.EqualValues(t, 1, atomic.LoadInt64(&next.synthCalls))
}

func TestCachingServiceVoicesPassThrough(t *testing.T) {
	next := &countingService{}
	svc := NewCachingService(next, time.Minute, time.Minute)

	for i := 0; i < 3; i++ {
		voices, err := svc.ListVoices(context.Background())
		require.NoError(t, err)
		assert.Len(t, voices, 1)
	}
	// 声音列表不缓存
	assert.EqualValues(t, 3, atomic.LoadInt64(&next.voiceCalls))
}

func TestCachingServiceReportsGlobalMetrics(t *testing.T) {
	metrics.GlobalMetrics.Reset()
	next := &countingService{}
	svc := NewCachingService(next, time.Minute, time.Minute)

	req := models.SynthesisRequest{Text: "hello"}
	_, err := svc.Synthesize(context.Background(), req)
	require.NoError(t, err)
	_, err = svc.Synthesize(context.Background(), req)
	require.NoError(t, err)

	// 缓存命中/未命中必须反映到全局指标，/metrics 才能看到
	snapshot := metrics.GlobalMetrics.GetSnapshot()
	assert.EqualValues(t, 1, snapshot.CacheHits)
	assert.EqualValues(t, 1, snapshot.CacheMisses)
	assert.Equal(t, 50.0, snapshot.CacheHitRate)
}

func TestCachingServiceHitDoesNotMutateCachedEntry(t *testing.T) {
	next := &countingService{}
	svc := NewCachingService(next, time.Minute, time.Minute)

	req := models.SynthesisRequest{Text: "hello"}
	resp1, err := svc.Synthesize(context.Background(), req)
	require.NoError(t, err)

	resp2, err := svc.Synthesize(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, resp2.CacheHit)

	// 命中返回浅拷贝，缓存里的条目和首次响应保持原样
	assert.NotSame(t, resp1, resp2)
	assert.False(t, resp1.CacheHit)

	resp3, err := svc.Synthesize(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, resp3.CacheHit)
	assert.Equal(t, resp1.AudioContent, resp3.AudioContent)
}

// sizedService 返回固定大小音频的假服务，用于测试大小上限
type sizedService struct {
	synthCalls int64
}

func (s *sizedService) Synthesize(ctx context.Context, req models.SynthesisRequest) (*models.SynthesisResponse, error) {
	atomic.AddInt64(&s.synthCalls, 1)
	size := 1000
	if req.Text == "large" {
		size = 5000
	}
	return &models.SynthesisResponse{
		AudioContent: make([]byte, size),
		ContentType:  models.DefaultFormat,
	}, nil
}

func (s *sizedService) ListVoices(ctx context.Context) ([]models.Voice, error) {
	return []models.Voice{}, nil
}

func TestCachingServiceMaxTotalSize(t *testing.T) {
	next := &sizedService{}
	svc := NewCachingService(next, time.Minute, time.Minute, 3000).(*cachingService)
	ctx := context.Background()

	// 前三个请求各 1KB，正好填满 3KB 上限
	for _, text := range []string{"test1", "test2", "test3"} {
		_, err := svc.Synthesize(ctx, models.SynthesisRequest{Text: text})
		require.NoError(t, err)
	}

	stats := svc.GetStats()
	assert.Equal(t, 3, stats.ItemCount)
	assert.EqualValues(t, 3000, stats.TotalSize)

	// 超过上限的响应照常返回但不进缓存
	resp, err := svc.Synthesize(ctx, models.SynthesisRequest{Text: "large"})
	require.NoError(t, err)
	assert.Len(t, resp.AudioContent, 5000)

	stats = svc.GetStats()
	assert.Equal(t, 3, stats.ItemCount)
	assert.EqualValues(t, 3000, stats.TotalSize)

	// 未缓存的请求重复时再次穿透到下层
	_, err = svc.Synthesize(ctx, models.SynthesisRequest{Text: "large"})
	require.NoError(t, err)
	assert.EqualValues(t, 5, atomic.LoadInt64(&next.synthCalls))

	// 缓存内的请求仍然命中
	resp, err = svc.Synthesize(ctx, models.SynthesisRequest{Text: "test1"})
	require.NoError(t, err)
	assert.True(t, resp.CacheHit)
	assert.EqualValues(t, 5, atomic.LoadInt64(&next.synthCalls))
}

func TestCachingServiceStats(t *testing.T) {
	next := &countingService{}
	svc := NewCachingService(next, time.Minute, time.Minute).(*cachingService)

	req := models.SynthesisRequest{Text: "hello"}
	_, _ = svc.Synthesize(context.Background(), req)
	_, _ = svc.Synthesize(context.Background(), req)

	stats := svc.GetStats()
	assert.EqualValues(t, 1, stats.Hits)
	assert.EqualValues(t, 1, stats.Misses)
	assert.Equal(t, 50.0, stats.HitRate)
	assert.Equal(t, 1, stats.ItemCount)
	assert.Positive(t, stats.TotalSize)

	svc.ClearCache()
	assert.Zero(t, svc.GetStats().ItemCount)
}
