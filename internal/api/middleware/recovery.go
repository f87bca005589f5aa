package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/confguard/confguard/internal/pkg/logger"
	"github.com/confguard/confguard/internal/pkg/utils"
)

// Recovery converts panics into 500 responses instead of dropping the
// connection
func Recovery(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.WithFields(map[string]interface{}{
						"request_id": GetRequestID(r.Context()),
						"panic":      rec,
						"stack":      string(debug.Stack()),
					}).Error("Panic recovered")

					utils.WriteErrorMessage(w, http.StatusInternalServerError,
						"INTERNAL_ERROR", "Internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
