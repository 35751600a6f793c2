package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/decred/slog"
	"github.com/jrick/logrotate/rotator"
)

// LogConfig describes how the backend writes its output.
type LogConfig struct {
	// LogFile is the path of the rotated log file. Empty means stdout only.
	LogFile string
	// DebugLevel is the level applied to every logger created by the
	// backend ("trace", "debug", "info", "warn", "error", "critical").
	DebugLevel string
	// MaxLogFiles is the number of rotated files kept on disk.
	MaxLogFiles int
}

// logWriter tees log output to stdout and, when configured, to the rotator.
type logWriter struct {
	r *rotator.Rotator
}

func (w *logWriter) Write(p []byte) (int, error) {
	os.Stdout.Write(p)
	if w.r != nil {
		w.r.Write(p)
	}
	return len(p), nil
}

// LogBackend creates subsystem loggers that share one output and level.
type LogBackend struct {
	backend *slog.Backend
	rotator *rotator.Rotator
	level   slog.Level

	mtx     sync.Mutex
	loggers map[string]slog.Logger
}

// NewLogBackend creates a logging backend from the given config.
func NewLogBackend(cfg LogConfig) (*LogBackend, error) {
	level := slog.LevelInfo
	if cfg.DebugLevel != "" {
		var ok bool
		level, ok = slog.LevelFromString(cfg.DebugLevel)
		if !ok {
			return nil, fmt.Errorf("unknown log level %q", cfg.DebugLevel)
		}
	}

	var r *rotator.Rotator
	if cfg.LogFile != "" {
		logDir := filepath.Dir(cfg.LogFile)
		if err := os.MkdirAll(logDir, 0700); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		maxFiles := cfg.MaxLogFiles
		if maxFiles <= 0 {
			maxFiles = 5
		}
		var err error
		r, err = rotator.New(cfg.LogFile, 32*1024, false, maxFiles)
		if err != nil {
			return nil, fmt.Errorf("create log rotator: %w", err)
		}
	}

	return &LogBackend{
		backend: slog.NewBackend(&logWriter{r: r}),
		rotator: r,
		level:   level,
		loggers: make(map[string]slog.Logger),
	}, nil
}

// Logger returns the subsystem logger for the given tag, creating it on
// first use. Loggers are cached so repeated calls share level state.
func (b *LogBackend) Logger(tag string) slog.Logger {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	if l, ok := b.loggers[tag]; ok {
		return l
	}
	l := b.backend.Logger(tag)
	l.SetLevel(b.level)
	b.loggers[tag] = l
	return l
}

// SetLevel changes the level of every logger created by this backend.
func (b *LogBackend) SetLevel(level slog.Level) {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	b.level = level
	for _, l := range b.loggers {
		l.SetLevel(level)
	}
}

// Close flushes and closes the underlying log file, if any.
func (b *LogBackend) Close() error {
	if b.rotator != nil {
		return b.rotator.Close()
	}
	return nil
}
