// Package logger builds the program's structured logger. Records go to stderr, to an
// append-only file on disk, and to a bounded in-memory buffer.
package logger

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// LogFilePath is the log file, relative to the working directory.
const LogFilePath = "logs/scene.log"

// DefaultMaxLines bounds the in-memory buffer.
const DefaultMaxLines = 1000

// Options configures New.
type Options struct {
	Level slog.Level
	// Path of the log file; empty uses LogFilePath, "-" disables the file.
	Path string
	// Console receives a copy of every record; nil means os.Stderr.
	Console  io.Writer
	MaxLines int
}

// Logger is a slog.Logger that also keeps the most recent lines in memory.
type Logger struct {
	*slog.Logger

	mu    sync.Mutex
	lines []string
	max   int
	file  *os.File
}

// New opens the log file, creating its directory if needed.
func New(opts Options) (*Logger, error) {
	l := &Logger{max: opts.MaxLines}
	if l.max <= 0 {
		l.max = DefaultMaxLines
	}
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	writers := []io.Writer{console, lineSink{l}}

	path := opts.Path
	if path == "" {
		path = LogFilePath
	}
	if path != "-" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("logger: %w", err)
		}
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("logger: %w", err)
		}
		l.file = f
		writers = append(writers, f)
	}

	h := slog.NewTextHandler(io.MultiWriter(writers...), &slog.HandlerOptions{Level: opts.Level})
	l.Logger = slog.New(h)
	return l, nil
}

// lineSink stores each record the handler writes as one line.
type lineSink struct {
	l *Logger
}

func (s lineSink) Write(p []byte) (int, error) {
	text := string(bytes.TrimRight(p, "\n"))
	s.l.mu.Lock()
	defer s.l.mu.Unlock()
	for _, line := range strings.Split(text, "\n") {
		s.l.lines = append(s.l.lines, line)
	}
	if over := len(s.l.lines) - s.l.max; over > 0 {
		s.l.lines = append(s.l.lines[:0], s.l.lines[over:]...)
	}
	return len(p), nil
}

// Lines returns a copy of the buffered lines, oldest first.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Raylib forwards one raylib trace message. Install it with rl.SetTraceLogCallback.
func (l *Logger) Raylib(level int, text string) {
	l.Log(context.Background(), RaylibLevel(level), text, "src", "raylib")
}

// RaylibLevel maps a raylib trace level onto slog.
func RaylibLevel(level int) slog.Level {
	switch rl.TraceLogLevel(level) {
	case rl.LogAll, rl.LogTrace, rl.LogDebug:
		return slog.LevelDebug
	case rl.LogInfo:
		return slog.LevelInfo
	case rl.LogWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// ParseLevel accepts debug, info, warn and error in any case.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("logger: %w", err)
	}
	return lvl, nil
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}
