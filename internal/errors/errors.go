package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnconfigured = errors.New("not configured")
	ErrUpstream     = errors.New("upstream service failed")
	ErrNotFound     = errors.New("not found")
)

// UpstreamError 携带上游服务返回的原始状态码和错误文本，
// 便于 HTTP 层按原样镜像给调用方
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("upstream returned status %d", e.Status)
	}
	return fmt.Sprintf("upstream returned status %d: %s", e.Status, e.Message)
}

// Unwrap 使 errors.Is(err, ErrUpstream) 成立
func (e *UpstreamError) Unwrap() error {
	return ErrUpstream
}

// NewUpstreamError 创建一个上游错误
func NewUpstreamError(status int, message string) *UpstreamError {
	return &UpstreamError{Status: status, Message: message}
}
