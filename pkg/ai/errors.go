package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// APIError 推理服务返回的错误
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e == nil {
		return "ai api error"
	}
	if e.Message == "" {
		return fmt.Sprintf("ai api error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("ai api error: status=%d: %s", e.StatusCode, e.Message)
}

// Temporary 429和5xx可重试
func (e *APIError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// isTransient 传输错误、限流和服务端错误可重试，上下文取消不重试
func isTransient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, ErrNoCompletion) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Temporary()
	}
	return true
}
