package logger

import (
	"context"
	"os"
	"strings"

	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"crypto-signal-analyzer/internal/trace"
)

var (
	globalLogger *zap.SugaredLogger
	logLevel     zapcore.Level
	// Whether detailed (debug) logging is enabled
	detailedLogging bool
)

// LogConfig holds logging configuration
type LogConfig struct {
	Level           string // DEBUG, INFO, WARN, ERROR
	Format          string // json or console
	DetailedLogging bool   // Enable debug logs
}

// Init initializes the global logger based on environment variables
func Init() error {
	return InitWithConfig(LoadConfigFromEnv())
}

// LoadConfigFromEnv loads logging configuration from environment variables
func LoadConfigFromEnv() LogConfig {
	return LogConfig{
		Level:           getEnvOrDefault("LOG_LEVEL", "INFO"),
		Format:          getEnvOrDefault("LOG_FORMAT", "json"),
		DetailedLogging: getEnvOrDefault("LOG_DETAILED", "false") == "true",
	}
}

// InitWithConfig initializes the logger with specific configuration
func InitWithConfig(config LogConfig) error {
	logLevel = parseLogLevel(config.Level)
	detailedLogging = config.DetailedLogging

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if config.Format == "console" {
		encoder = zapcore.NewConsoleEncoder(encCfg)
	} else {
		encoder = zapcore.NewJSONEncoder(encCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), logLevel)
	globalLogger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(2)).Sugar()
	return nil
}

// Sync flushes buffered log entries. Call on shutdown.
func Sync() {
	if globalLogger != nil {
		_ = globalLogger.Sync()
	}
}

func parseLogLevel(level string) zapcore.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return zapcore.DebugLevel
	case "INFO":
		return zapcore.InfoLevel
	case "WARN":
		return zapcore.WarnLevel
	case "ERROR":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getTraceAttrs extracts trace ID and span ID from context for log correlation
func getTraceAttrs(ctx context.Context) []any {
	traceID, spanID, ok := trace.GetTraceFields(ctx)
	if !ok {
		return nil
	}
	return []any{
		"trace_id", traceID,
		"span_id", spanID,
	}
}

// Debug logs a debug message. No-op unless detailed logging is enabled.
func Debug(ctx context.Context, msg string, args ...any) {
	if !detailedLogging {
		return
	}
	logWithTrace(ctx, zapcore.DebugLevel, msg, args...)
}

// Info logs an info message
func Info(ctx context.Context, msg string, args ...any) {
	logWithTrace(ctx, zapcore.InfoLevel, msg, args...)
}

// Warn logs a warning message
func Warn(ctx context.Context, msg string, args ...any) {
	logWithTrace(ctx, zapcore.WarnLevel, msg, args...)
}

// Error logs an error message
func Error(ctx context.Context, msg string, args ...any) {
	logWithTrace(ctx, zapcore.ErrorLevel, msg, args...)
}

// ErrorWithErr logs an error message with an error object and records the
// error on the active span if one is present.
func ErrorWithErr(ctx context.Context, msg string, err error, args ...any) {
	span := oteltrace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	allArgs := append([]any{"error", err}, args...)
	logWithTrace(ctx, zapcore.ErrorLevel, msg, allArgs...)
}

func logWithTrace(ctx context.Context, level zapcore.Level, msg string, args ...any) {
	if globalLogger == nil {
		return
	}
	if traceAttrs := getTraceAttrs(ctx); traceAttrs != nil {
		args = append(traceAttrs, args...)
	}
	switch level {
	case zapcore.DebugLevel:
		globalLogger.Debugw(msg, args...)
	case zapcore.InfoLevel:
		globalLogger.Infow(msg, args...)
	case zapcore.WarnLevel:
		globalLogger.Warnw(msg, args...)
	default:
		globalLogger.Errorw(msg, args...)
	}
}

// IsDebugEnabled returns whether debug logging is enabled
func IsDebugEnabled() bool {
	return detailedLogging
}
