package logger

import (
	"bytes"
	"strings"
	"testing"
)

type fakeConfig struct{ level string }

func (f fakeConfig) GetLogLevel() string { return f.level }

func TestParseLevel(t *testing.T) {
	cases := map[string]int{
		"DEBUG":    LevelDebug,
		"debug":    LevelDebug,
		"INFO":     LevelInfo,
		"":         LevelInfo,
		"verbose":  LevelInfo,
		"WARN":     LevelWarning,
		"WARNING":  LevelWarning,
		"ERROR":    LevelError,
		"CRITICAL": LevelCritical,
	}
	for name, want := range cases {
		if got := ParseLevel(name); got != want {
			t.Errorf("ParseLevel(%q) = %d, want %d", name, got, want)
		}
	}
}

func TestLoggerFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerTo(&buf, fakeConfig{level: "WARNING"}, "Test")

	l.Debug("hidden debug")
	l.Info("hidden info")
	l.Warning("shown %d", 1)
	l.Error("shown %d", 2)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("messages below WARNING should be dropped, got %q", out)
	}
	if !strings.Contains(out, "[Test] WARNING: shown 1") {
		t.Errorf("missing warning line in %q", out)
	}
	if !strings.Contains(out, "[Test] ERROR: shown 2") {
		t.Errorf("missing error line in %q", out)
	}
}

func TestNamedSharesLevel(t *testing.T) {
	var buf bytes.Buffer
	root := NewLoggerTo(&buf, fakeConfig{level: "ERROR"}, "Root")
	child := root.Named("Child")

	child.Info("dropped")
	child.Error("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("child should inherit ERROR level, got %q", out)
	}
	if !strings.Contains(out, "[Child] ERROR: kept") {
		t.Errorf("missing child error line in %q", out)
	}
}

func TestCriticalExits(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerTo(&buf, nil, "Fatal")
	code := -1
	l.exit = func(c int) { code = c }

	l.Critical("boom")

	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(buf.String(), "[Fatal] CRITICAL: boom") {
		t.Errorf("missing critical line in %q", buf.String())
	}
}
