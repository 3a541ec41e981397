package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"go-rentify/internal/model"
)

// Recovery turns a panic into a 500 JSON response. The panic value is only
// echoed to the client when exposeDetails is set (development).
func Recovery(exposeDetails bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if recovered := recover(); recovered != nil {
					slog.Error("panic recovered",
						"request_id", RequestIDFromContext(r.Context()),
						"error", fmt.Sprintf("%v", recovered),
						"stack", string(debug.Stack()))

					body := &model.APIError{Code: "INTERNAL_ERROR", Message: "Unexpected server error"}
					if exposeDetails {
						body.Details = fmt.Sprintf("%v", recovered)
					}

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = jsonEncode(w, model.APIResponse{Success: false, Error: body})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
