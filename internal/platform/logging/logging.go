package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Config captures logging configuration options.
type Config struct {
	Level    string
	Dir      string
	Filename string
}

// Logger wraps slog with printf-style helpers used across the server.
type Logger struct {
	handler *textHandler
	slogger *slog.Logger
	file    *os.File
}

var (
	colorReset = "\x1b[0m"
	colorTime  = "\x1b[90m"
	colorDebug = "\x1b[36m"
	colorInfo  = "\x1b[32m"
	colorWarn  = "\x1b[33m"
	colorError = "\x1b[31m"
)

// textHandler renders records as colourised single-line text.
type textHandler struct {
	console io.Writer
	file    io.Writer
	level   slog.Level
	mu      sync.Mutex
}

func (h *textHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *textHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	timeStr := r.Time.Format("2006-01-02 15:04:05.000")

	var levelStr, levelColor string
	switch r.Level {
	case slog.LevelDebug:
		levelStr, levelColor = "DEBUG", colorDebug
	case slog.LevelWarn:
		levelStr, levelColor = "WARN", colorWarn
	case slog.LevelError:
		levelStr, levelColor = "ERROR", colorError
	default:
		levelStr, levelColor = "INFO", colorInfo
	}

	plain := fmt.Sprintf("[%s] [%s] %s\n", timeStr, levelStr, r.Message)
	colored := fmt.Sprintf("%s[%s]%s %s[%s]%s %s\n",
		colorTime, timeStr, colorReset,
		levelColor, levelStr, colorReset,
		r.Message,
	)

	if _, err := io.WriteString(h.console, colored); err != nil {
		return err
	}
	if h.file != nil {
		if _, err := io.WriteString(h.file, plain); err != nil {
			return err
		}
	}
	return nil
}

func (h *textHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }

func (h *textHandler) WithGroup(_ string) slog.Handler { return h }

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// New creates a Logger writing to stdout and, when Dir is set, a log file.
func New(cfg Config) (*Logger, error) {
	handler := &textHandler{
		console: os.Stdout,
		level:   parseLevel(cfg.Level),
	}

	logger := &Logger{handler: handler}

	if cfg.Dir != "" {
		if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		filename := cfg.Filename
		if filename == "" {
			filename = "server.log"
		}
		file, err := os.OpenFile(
			filepath.Join(cfg.Dir, filename),
			os.O_CREATE|os.O_WRONLY|os.O_APPEND,
			0o644,
		)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		handler.file = file
		logger.file = file
	}

	logger.slogger = slog.New(handler)
	return logger, nil
}

// Close releases the log file when one is open.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Slog exposes the structured logger for integrations expecting *slog.Logger.
func (l *Logger) Slog() *slog.Logger {
	return l.slogger
}

func (l *Logger) log(level slog.Level, msg string, args ...interface{}) {
	if l == nil || l.slogger == nil {
		return
	}
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	l.slogger.Log(context.Background(), level, msg)
}

func (l *Logger) Debug(msg string, args ...interface{}) {
	l.log(slog.LevelDebug, msg, args...)
}

func (l *Logger) Info(msg string, args ...interface{}) {
	l.log(slog.LevelInfo, msg, args...)
}

func (l *Logger) Warn(msg string, args ...interface{}) {
	l.log(slog.LevelWarn, msg, args...)
}

func (l *Logger) Error(msg string, args ...interface{}) {
	l.log(slog.LevelError, msg, args...)
}

// Tag variants prefix messages with a bracketed component name.

func (l *Logger) DebugTag(tag, msg string, args ...interface{}) {
	l.log(slog.LevelDebug, "["+tag+"] "+msg, args...)
}

func (l *Logger) InfoTag(tag, msg string, args ...interface{}) {
	l.log(slog.LevelInfo, "["+tag+"] "+msg, args...)
}

func (l *Logger) WarnTag(tag, msg string, args ...interface{}) {
	l.log(slog.LevelWarn, "["+tag+"] "+msg, args...)
}

func (l *Logger) ErrorTag(tag, msg string, args ...interface{}) {
	l.log(slog.LevelError, "["+tag+"] "+msg, args...)
}
