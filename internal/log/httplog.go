package log

import (
	"net/http"
	"time"
)

// HTTPLogEntry represents an HTTP request/response log entry
type HTTPLogEntry struct {
	RequestID  string
	Method     string
	Path       string
	Status     int
	Duration   time.Duration
	Size       int
	RemoteAddr string
	UserAgent  string
	Error      error
}

// LogHTTPRequest logs a completed HTTP request. Failed requests log at error
// level, everything else at info.
func LogHTTPRequest(e HTTPLogEntry) {
	fields := []interface{}{
		"request_id", e.RequestID,
		"method", e.Method,
		"path", e.Path,
		"status", e.Status,
		"duration_ms", e.Duration.Milliseconds(),
		"size", e.Size,
		"remote_addr", e.RemoteAddr,
		"user_agent", e.UserAgent,
	}

	if e.Error != nil || e.Status >= http.StatusInternalServerError {
		if e.Error != nil {
			fields = append(fields, "error", e.Error.Error())
		}
		Errorw("http request failed", fields...)
		return
	}
	Infow("http request", fields...)
}
