package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"go-rentify/internal/model"
)

const defaultRequestTimeout = 30 * time.Second

// Timeout bounds a request, store round trips included, and answers 503
// with the standard error envelope when the deadline passes.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	body, _ := json.Marshal(model.APIResponse{
		Success: false,
		Error:   &model.APIError{Code: "REQUEST_TIMEOUT", Message: "Request timed out"},
	})

	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, timeout, string(body))
	}
}
