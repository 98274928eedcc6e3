// Package logging builds the structured JSON logger used by the CLI and the
// HTTP server. The planning core never logs.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
)

// NewLogger creates a JSON logger writing to stderr.
// Supported levels: debug, info, warn, error.
func NewLogger(level string) *slog.Logger {
	return NewLoggerTo(os.Stderr, level)
}

// NewLoggerTo encodes records as JSON lines on w through a zap core. Callers
// keep the slog API.
func NewLoggerTo(w io.Writer, level string) *slog.Logger {
	lvl := ParseLevel(level)
	return slog.New(zapslog.NewHandler(newCore(w, lvl), zapslog.WithCaller(lvl == slog.LevelDebug)))
}

func newCore(w io.Writer, lvl slog.Level) zapcore.Core {
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "time"
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.AddSync(w), zapLevel(lvl))
}

func zapLevel(lvl slog.Level) zapcore.Level {
	switch {
	case lvl >= slog.LevelError:
		return zapcore.ErrorLevel
	case lvl >= slog.LevelWarn:
		return zapcore.WarnLevel
	case lvl >= slog.LevelInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(zapslog.NewHandler(zapcore.NewNopCore()))
}

func WithRequestID(logger *slog.Logger, requestID string) *slog.Logger {
	return logger.With("request_id", requestID)
}

func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	return logger.With("component", component)
}

// Logf adapts logger to the printf-style hook taken by the export pipeline.
func Logf(logger *slog.Logger) func(format string, args ...any) {
	return func(format string, args ...any) {
		logger.Info(sprintf(format, args...))
	}
}

// SanitizeToken masks a secret for safe logging.
func SanitizeToken(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
