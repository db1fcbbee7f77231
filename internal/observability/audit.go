package observability

import (
	"log/slog"
	"net/http"
)

// Audit emits one structured audit line for a mutating request. The trace
// context handler on the logger attaches trace/span IDs when present.
func Audit(r *http.Request, event string, attrs ...any) {
	base := []any{
		"event", event,
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", r.Header.Get("X-Request-Id"),
	}
	base = append(base, attrs...)
	slog.InfoContext(r.Context(), "audit", base...)
}
