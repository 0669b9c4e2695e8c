package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// BenchmarkLogger 测量日志中间件在热路径上的开销
func BenchmarkLogger(b *testing.B) {
	gin.SetMode(gin.TestMode)

	// 丢弃日志输出，只测量中间件本身
	logger = zerolog.New(io.Discard).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	initialized = true

	router := gin.New()
	router.Use(Logger())
	router.GET("/bench", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	req, _ := http.NewRequest("GET", "/bench", nil)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
	}
}
