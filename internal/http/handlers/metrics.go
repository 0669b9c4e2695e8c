package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"hearmenow/internal/metrics"
)

// MetricsHandler 处理性能指标查询
type MetricsHandler struct{}

// NewMetricsHandler 创建新的 metrics handler
func NewMetricsHandler() *MetricsHandler {
	return &MetricsHandler{}
}

// GetMetrics 获取性能指标
func (h *MetricsHandler) GetMetrics(c *gin.Context) {
	snapshot := metrics.GlobalMetrics.GetSnapshot()

	// 获取系统内存统计
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	response := gin.H{
		"synthesis": gin.H{
			"requests":     snapshot.SynthRequests,
			"success":      snapshot.SynthSuccess,
			"errors":       snapshot.SynthErrors,
			"success_rate": snapshot.SuccessRate,
			"latency": gin.H{
				"avg": snapshot.AvgLatency.String(),
				"max": snapshot.MaxLatency.String(),
				"min": snapshot.MinLatency.String(),
			},
		},
		"classification": gin.H{
			"remote":   snapshot.ClassifyRemote,
			"fallback": snapshot.ClassifyFallback,
			"errors":   snapshot.ClassifyErrors,
		},
		"cache": gin.H{
			"hits":     snapshot.CacheHits,
			"misses":   snapshot.CacheMisses,
			"hit_rate": snapshot.CacheHitRate,
		},
		"system": gin.H{
			"memory": gin.H{
				"alloc_mb":       memStats.Alloc / 1024 / 1024,
				"total_alloc_mb": memStats.TotalAlloc / 1024 / 1024,
				"sys_mb":         memStats.Sys / 1024 / 1024,
				"num_gc":         memStats.NumGC,
			},
			"goroutines": runtime.NumGoroutine(),
		},
		"timestamp": snapshot.Timestamp.Format(time.RFC3339),
	}

	c.JSON(http.StatusOK, response)
}

// ResetMetrics 重置性能指标
func (h *MetricsHandler) ResetMetrics(c *gin.Context) {
	metrics.GlobalMetrics.Reset()
	c.JSON(http.StatusOK, gin.H{
		"message": "Metrics reset successfully",
	})
}
