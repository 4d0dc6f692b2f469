package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Logger уровневый логгер с printf-интерфейсом поверх slog
type Logger struct {
	slog *slog.Logger
	file *os.File
}

// New создает логгер, пишущий в файл и stdout
// Пустой путь к файлу означает вывод только в stdout
func New(filePath string, level string) (*Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	var (
		out  io.Writer = os.Stdout
		file *os.File
	)

	if filePath != "" {
		if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
			return nil, fmt.Errorf("logger: create log dir: %w", err)
		}
		file, err = os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("logger: open log file: %w", err)
		}
		out = io.MultiWriter(os.Stdout, file)
	}

	return NewWithWriter(out, lvl, file), nil
}

// NewWithWriter создает логгер поверх произвольного writer
func NewWithWriter(w io.Writer, level slog.Level, file *os.File) *Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return &Logger{
		slog: slog.New(h),
		file: file,
	}
}

// Nop логгер, отбрасывающий все сообщения (для тестов)
func Nop() *Logger {
	return NewWithWriter(io.Discard, slog.LevelError+1, nil)
}

func (l *Logger) Debug(format string, v ...interface{}) {
	l.log(slog.LevelDebug, format, v...)
}

func (l *Logger) Info(format string, v ...interface{}) {
	l.log(slog.LevelInfo, format, v...)
}

func (l *Logger) Warn(format string, v ...interface{}) {
	l.log(slog.LevelWarn, format, v...)
}

func (l *Logger) Error(format string, v ...interface{}) {
	l.log(slog.LevelError, format, v...)
}

// Fatal логирует ошибку и завершает процесс
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.log(slog.LevelError, format, v...)
	l.Close()
	os.Exit(1)
}

// Close закрывает файл лога
func (l *Logger) Close() {
	if l.file != nil {
		_ = l.file.Sync()
		_ = l.file.Close()
		l.file = nil
	}
}

func (l *Logger) log(level slog.Level, format string, v ...interface{}) {
	ctx := context.Background()
	if !l.slog.Enabled(ctx, level) {
		return
	}
	l.slog.Log(ctx, level, fmt.Sprintf(format, v...))
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("logger: unknown level %q", level)
	}
}
