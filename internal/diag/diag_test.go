package diag

import (
	"path/filepath"
	"strings"
	"testing"
)

type lineRecorder struct {
	lines []string
}

func (r *lineRecorder) Write(p []byte) (int, error) {
	r.lines = append(r.lines, strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

func TestChannelKeepsStreamsIndependent(t *testing.T) {
	info := &lineRecorder{}
	errw := &lineRecorder{}
	ch := New(info, errw)
	ch.Infof("warning: %d candidates", 2)
	ch.Errorf("compile failed")
	ch.Infof("second note")

	if len(info.lines) != 2 || info.lines[0] != "warning: 2 candidates" {
		t.Fatalf("unexpected info stream: %v", info.lines)
	}
	if len(errw.lines) != 1 || errw.lines[0] != "compile failed" {
		t.Fatalf("unexpected error stream: %v", errw.lines)
	}
}

func TestInfoWriterSplitsLines(t *testing.T) {
	info := &lineRecorder{}
	ch := New(info, nil)
	w := ch.InfoWriter()
	if _, err := w.Write([]byte("first\nsecond\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if len(info.lines) != 2 || info.lines[1] != "second" {
		t.Fatalf("unexpected lines: %v", info.lines)
	}
}

func TestLogbookMirrorsChannel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "kata.log")
	book, err := NewLogbook(path)
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	ch := New(nil, nil, WithLogbook(book))
	ch.Infof("graded Identity")
	ch.Errorf("try again")

	lines := book.Tail(10)
	if len(lines) != 2 {
		t.Fatalf("expected 2 logbook lines, got %d: %v", len(lines), lines)
	}
	if !strings.Contains(lines[0], "INFO") || !strings.Contains(lines[0], "graded Identity") {
		t.Fatalf("unexpected first line: %s", lines[0])
	}
	if !strings.Contains(lines[1], "ERROR") {
		t.Fatalf("unexpected second line: %s", lines[1])
	}
}
