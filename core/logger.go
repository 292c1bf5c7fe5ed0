package core

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger provides debug logging for the watsonx.data SDK.
type Logger struct {
	enabled bool
	sugar   *zap.SugaredLogger
}

// NewLogger creates a new logger. With debug disabled only warnings and
// errors are emitted.
func NewLogger(enabled bool) *Logger {
	var cfg zap.Config
	if enabled {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		logger = zap.NewNop()
	}
	return NewLoggerFrom(logger.Named("watsonxdata-go"), enabled)
}

// NewLoggerFrom wraps an existing zap logger. Debug and info messages are only
// written when enabled is true.
func NewLoggerFrom(logger *zap.Logger, enabled bool) *Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Logger{
		enabled: enabled,
		sugar:   logger.Sugar(),
	}
}

// NopLogger returns a logger that discards everything.
func NopLogger() *Logger {
	return NewLoggerFrom(zap.NewNop(), false)
}

// Debug logs a debug message (only if debug is enabled).
func (l *Logger) Debug(message string, args ...any) {
	if l.enabled {
		l.sugar.Debugf(message, args...)
	}
}

// Info logs an info message (only if debug is enabled).
func (l *Logger) Info(message string, args ...any) {
	if l.enabled {
		l.sugar.Infof(message, args...)
	}
}

// Warn logs a warning message (always logged).
func (l *Logger) Warn(message string, args ...any) {
	l.sugar.Warnf(message, args...)
}

// Error logs an error message (always logged).
func (l *Logger) Error(message string, args ...any) {
	l.sugar.Errorf(message, args...)
}

// RateLimit logs rate limit information.
func (l *Logger) RateLimit(info RateLimitInfo) {
	if !l.enabled {
		return
	}
	kv := []any{
		"attempt", info.Attempt,
		"url", info.RequestURL,
		"status", info.HTTPStatus,
		"retryAfterSeconds", info.RetryAfter,
	}
	if info.Trace != "" {
		kv = append(kv, "trace", info.Trace)
	}
	l.sugar.Debugw("rate limited", kv...)
}

// Timing logs request timing information.
func (l *Logger) Timing(method, url string, status int, duration time.Duration) {
	if l.enabled {
		l.sugar.Debugw("request completed",
			"method", method,
			"url", url,
			"status", status,
			"durationMs", duration.Milliseconds(),
		)
	}
}

// Retry logs retry attempt information.
func (l *Logger) Retry(attempt, maxAttempts int, delay time.Duration, reason string) {
	if l.enabled {
		l.sugar.Debugw("retrying request",
			"attempt", attempt,
			"maxAttempts", maxAttempts,
			"delayMs", delay.Milliseconds(),
			"reason", reason,
		)
	}
}

// Token logs token operations (without exposing the actual token).
func (l *Logger) Token(operation string, authType string) {
	if l.enabled {
		l.sugar.Debugw("token "+operation, "authType", authType)
	}
}

// Enabled returns whether debug logging is enabled.
func (l *Logger) Enabled() bool {
	return l.enabled
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error {
	return l.sugar.Sync()
}
