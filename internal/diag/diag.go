// Package diag carries grading diagnostics on two independent streams:
// informational lines (compiler warnings, multiple-candidate notices,
// engine messages) and error lines (compile errors, resolution failures,
// fault text). Lines are flushed as they are emitted, never buffered until
// the end of a run.
package diag

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Channel is a write-only sink shared by all pipeline stages during one
// invocation. Create one per invocation; do not share across concurrent
// grading runs.
type Channel struct {
	mu   sync.Mutex
	info io.Writer
	errw io.Writer
	book *Logbook
}

// Option customizes a channel.
type Option func(*Channel)

// WithLogbook mirrors every line into a persistent logbook.
func WithLogbook(book *Logbook) Option {
	return func(c *Channel) {
		c.book = book
	}
}

// New builds a channel writing informational lines to info and error lines
// to errw. Nil writers discard their stream.
func New(info, errw io.Writer, opts ...Option) *Channel {
	if info == nil {
		info = io.Discard
	}
	if errw == nil {
		errw = io.Discard
	}
	c := &Channel{info: info, errw: errw}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Infof emits one informational line.
func (c *Channel) Infof(format string, args ...any) {
	c.emit(c.info, LevelInfo, fmt.Sprintf(format, args...))
}

// Errorf emits one error line.
func (c *Channel) Errorf(format string, args ...any) {
	c.emit(c.errw, LevelError, fmt.Sprintf(format, args...))
}

func (c *Channel) emit(w io.Writer, level Level, line string) {
	if c == nil {
		return
	}
	line = strings.TrimRight(line, "\n")
	c.mu.Lock()
	fmt.Fprintln(w, line)
	c.mu.Unlock()
	if c.book != nil {
		c.book.Append(level, line)
	}
}

// InfoWriter adapts the informational stream to io.Writer so collaborators
// that expect a plain sink (the simulator's Message output) can attach.
func (c *Channel) InfoWriter() io.Writer {
	return infoWriter{c: c}
}

type infoWriter struct {
	c *Channel
}

func (w infoWriter) Write(p []byte) (int, error) {
	text := strings.TrimRight(string(p), "\n")
	for _, line := range strings.Split(text, "\n") {
		w.c.Infof("%s", line)
	}
	return len(p), nil
}
