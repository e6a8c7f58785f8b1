package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/lunahealth/hospital-assistant/pkg/logging"
)

// RequestLogger emits structured logs for every HTTP request. When the
// conversational runtime supplies its session header, the conversation
// id is carried in both log lines so tool calls can be correlated.
func RequestLogger(logger *logging.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqID := r.Header.Get("X-Request-ID")
			if reqID == "" {
				reqID = uuid.NewString()
			}
			fields := []interface{}{
				"method", r.Method,
				"path", r.URL.Path,
				"request_id", reqID,
				"remote_ip", r.RemoteAddr,
			}
			if conversationID := r.Header.Get("X-Conversation-Id"); conversationID != "" {
				fields = append(fields, "conversation_id", conversationID)
			}
			logger.Info("request started", fields...)
			next.ServeHTTP(w, r)
			logger.Info("request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"request_id", reqID,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}
