package logger

import (
	"log/slog"
	"os"
	"strings"

	slogzap "github.com/samber/slog-zap/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var globalLogger *slog.Logger

// ParseLevel maps a config level string onto a slog level. Unknown values yield INFO.
func ParseLevel(levelStr string) (slog.Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(levelStr)) {
	case "DEBUG":
		return slog.LevelDebug, true
	case "INFO", "":
		return slog.LevelInfo, true
	case "WARN", "WARNING":
		return slog.LevelWarn, true
	case "ERROR":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

func zapLevel(level slog.Level) zapcore.Level {
	switch {
	case level <= slog.LevelDebug:
		return zapcore.DebugLevel
	case level <= slog.LevelInfo:
		return zapcore.InfoLevel
	case level <= slog.LevelWarn:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

// Init builds the zap logger for the process and routes the global slog logger
// through it. development switches to the human readable console encoder.
func Init(levelStr string, development bool) (*zap.Logger, error) {
	level, ok := ParseLevel(levelStr)

	zapCfg := zap.NewProductionConfig()
	if development {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(zapLevel(level))

	zapLogger, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}

	handler := slogzap.Option{
		Level:  level,
		Logger: zapLogger,
	}.NewZapHandler()
	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)

	if !ok {
		globalLogger.Warn("Invalid log level string, defaulting to INFO", "input", levelStr)
	}
	return zapLogger, nil
}

func ensureInitialized() {
	if globalLogger == nil {
		globalLogger = slog.Default()
	}
}

// Debug logs a message at DebugLevel.
func Debug(msg string, args ...any) {
	ensureInitialized()
	globalLogger.Debug(msg, args...)
}

// Info logs a message at InfoLevel.
func Info(msg string, args ...any) {
	ensureInitialized()
	globalLogger.Info(msg, args...)
}

// Warn logs a message at WarnLevel.
func Warn(msg string, args ...any) {
	ensureInitialized()
	globalLogger.Warn(msg, args...)
}

// Error logs a message at ErrorLevel.
func Error(msg string, args ...any) {
	ensureInitialized()
	globalLogger.Error(msg, args...)
}

// Fatal logs a message at ErrorLevel then exits.
func Fatal(msg string, args ...any) {
	ensureInitialized()
	globalLogger.Error(msg, args...)
	os.Exit(1)
}
