package logger

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type captureBroadcaster struct {
	lines []Line
}

func (c *captureBroadcaster) BroadcastLog(line Line) {
	c.lines = append(c.lines, line)
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   DEBUG,
		"INFO":    INFO,
		"warning": WARN,
		"warn":    WARN,
		"error":   ERROR,
		"bogus":   INFO,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLevelFilteringAndFormat(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(WARN, []io.Writer{&buf}, "assets")
	b := &captureBroadcaster{}
	log.SetBroadcaster(b)

	log.Info("ignored %d", 1)
	log.Warn("part %s missing", "A-1")
	log.Error("plain")

	out := buf.String()
	if strings.Contains(out, "ignored") {
		t.Fatalf("info line should be filtered: %q", out)
	}
	if !strings.Contains(out, "WARN: [assets] part A-1 missing") {
		t.Fatalf("missing formatted warn line: %q", out)
	}
	if !strings.Contains(out, "ERROR: [assets] plain") {
		t.Fatalf("missing error line: %q", out)
	}
	if len(b.lines) != 2 || b.lines[0].Level != "warn" || b.lines[0].Source != "assets" {
		t.Fatalf("unexpected broadcast lines %+v", b.lines)
	}
}

func TestWithKeepsOutputs(t *testing.T) {
	var buf bytes.Buffer
	base := NewLogger(DEBUG, []io.Writer{&buf}, "")

	base.With("acl").Debug("loaded")
	if !strings.Contains(buf.String(), "DEBUG: [acl] loaded") {
		t.Fatalf("derived logger output = %q", buf.String())
	}
}

func TestDiscardWritesNothing(t *testing.T) {
	l := Discard()
	b := &captureBroadcaster{}
	l.SetBroadcaster(b)
	l.Error("nothing")
	if len(b.lines) != 0 {
		t.Fatal("discard logger should filter every level")
	}
}

func TestCreateLogFileRotates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logs", "parttrack.log")

	f, err := CreateLogFile(path, 1)
	if err != nil {
		t.Fatalf("CreateLogFile: %v", err)
	}
	if _, err := f.Write(bytes.Repeat([]byte("x"), 1024*1024+1)); err != nil {
		t.Fatalf("write: %v", err)
	}
	f.Close()

	f, err = CreateLogFile(path, 1)
	if err != nil {
		t.Fatalf("CreateLogFile after growth: %v", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() != 0 {
		t.Fatalf("expected fresh file after rotation, size %d", info.Size())
	}
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 2 {
		t.Fatalf("expected rotated file alongside new one, got %d entries", len(entries))
	}
}
