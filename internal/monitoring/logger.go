package monitoring

import (
	"log/slog"
	"os"
	"time"
)

// Logger provides structured JSON logging with request and prediction
// helpers.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new logger writing JSON to stdout.
func NewLogger() *Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   "timestamp",
					Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
				}
			}
			return a
		},
	})

	return &Logger{Logger: slog.New(handler)}
}

// RequestLogger logs HTTP request details.
func (l *Logger) RequestLogger(method, path, ip, userAgent string, statusCode int, duration time.Duration) {
	l.Info("HTTP Request",
		"method", method,
		"path", path,
		"ip", ip,
		"user_agent", userAgent,
		"status_code", statusCode,
		"duration_ms", duration.Milliseconds(),
	)
}

// PredictionLogger logs a completed prediction.
func (l *Logger) PredictionLogger(probability float64, riskLevel string, warnings int, duration time.Duration, cacheHit bool) {
	l.Info("Prediction Completed",
		"success_probability", probability,
		"risk_level", riskLevel,
		"anomaly_warnings", warnings,
		"duration_ms", duration.Milliseconds(),
		"cache_hit", cacheHit,
	)
}

// ValidationLogger logs a rejected input.
func (l *Logger) ValidationLogger(code, field, message, ip string) {
	l.Warn("Validation Rejected",
		"code", code,
		"field", field,
		"message", message,
		"ip", ip,
	)
}

// APIErrorLogger logs API errors with request context.
func (l *Logger) APIErrorLogger(err error, method, path, ip string, statusCode int) {
	l.Error("API Error",
		"error", err.Error(),
		"method", method,
		"path", path,
		"ip", ip,
		"status_code", statusCode,
	)
}

// PerformanceLogger flags slow operations.
func (l *Logger) PerformanceLogger(operation string, value float64, unit string) {
	l.Warn("Performance Warning",
		"operation", operation,
		"value", value,
		"unit", unit,
	)
}
