// Package logging builds the zerolog loggers used by the command line tools.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

const filePermission = 0o664

// Builder assembles a logger from a level, a format and a destination.
type Builder struct {
	writer io.Writer
	path   string
	level  string
	format string
}

// New returns a builder writing console output to stderr at info level.
func New() *Builder {
	return &Builder{writer: os.Stderr, level: "info", format: "console"}
}

// ToWriter sends output to w.
func (b *Builder) ToWriter(w io.Writer) *Builder {
	b.writer = w
	return b
}

// ToFile appends output to the file at path.
func (b *Builder) ToFile(path string) *Builder {
	b.path = path
	return b
}

// Level sets the minimum level (debug, info, warn, error).
func (b *Builder) Level(level string) *Builder {
	b.level = level
	return b
}

// Format selects "console" or "json" output.
func (b *Builder) Format(format string) *Builder {
	b.format = format
	return b
}

// Logger is a built logger plus the file it owns, if any.
type Logger struct {
	zerolog.Logger
	file *os.File
}

// Close releases the log file.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Make builds the logger.
func (b *Builder) Make() (*Logger, error) {
	level := zerolog.InfoLevel
	if raw := strings.TrimSpace(b.level); raw != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(raw))
		if err != nil {
			return nil, fmt.Errorf("logging: %w", err)
		}
		level = parsed
	}

	out := &Logger{}
	writer := b.writer
	if writer == nil {
		writer = os.Stderr
	}
	if b.path != "" {
		file, err := os.OpenFile(b.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, filePermission)
		if err != nil {
			return nil, fmt.Errorf("logging: open %s: %w", b.path, err)
		}
		out.file = file
		writer = zerolog.SyncWriter(file)
	}

	switch strings.ToLower(strings.TrimSpace(b.format)) {
	case "", "console", "text":
		writer = zerolog.ConsoleWriter{Out: writer, NoColor: b.path != "", TimeFormat: "15:04:05"}
	case "json":
	default:
		out.Close()
		return nil, fmt.Errorf("logging: unknown format %q", b.format)
	}

	out.Logger = zerolog.New(writer).Level(level).With().Timestamp().Logger()
	return out, nil
}
