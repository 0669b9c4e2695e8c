package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	custom_errors "hearmenow/internal/errors"
)

func doRequestWithError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(ErrorHandler())
	router.GET("/boom", func(c *gin.Context) {
		_ = c.Error(err)
	})

	req, _ := http.NewRequest("GET", "/boom", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestErrorHandlerMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantSubstr string
	}{
		{
			name:       "调用方错误映射为400",
			err:        fmt.Errorf("%w: missing 'text' in request body", custom_errors.ErrInvalidInput),
			wantStatus: http.StatusBadRequest,
			wantSubstr: "text",
		},
		{
			name:       "配置缺失映射为500并点名设置",
			err:        fmt.Errorf("%w: ELEVENLABS_API_KEY not configured", custom_errors.ErrUnconfigured),
			wantStatus: http.StatusInternalServerError,
			wantSubstr: "ELEVENLABS_API_KEY",
		},
		{
			name:       "上游错误镜像状态码和文本",
			err:        custom_errors.NewUpstreamError(http.StatusUnprocessableEntity, "voice not found"),
			wantStatus: http.StatusUnprocessableEntity,
			wantSubstr: "voice not found",
		},
		{
			name:       "无状态码的上游错误映射为502",
			err:        fmt.Errorf("%w: connection reset", custom_errors.ErrUpstream),
			wantStatus: http.StatusBadGateway,
			wantSubstr: "connection reset",
		},
		{
			name:       "未知错误映射为500且不泄露细节",
			err:        fmt.Errorf("something internal exploded"),
			wantStatus: http.StatusInternalServerError,
			wantSubstr: "internal server error",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequestWithError(t, tc.err)

			assert.Equal(t, tc.wantStatus, w.Code)
			var resp map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Contains(t, resp["error"], tc.wantSubstr)
		})
	}
}

func TestErrorHandlerNoErrorPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(ErrorHandler())
	router.GET("/ok", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	req, _ := http.NewRequest("GET", "/ok", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}
