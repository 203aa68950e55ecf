package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "outbreak.log")

	l, err := New("debug", path, false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	lg := l.Component("test")
	lg.Info().Str("endpoint", "summary").Msg("fetched")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"endpoint":"summary"`) {
		t.Errorf("log file = %q, want endpoint field", data)
	}
	if !strings.Contains(string(data), `"component":"test"`) {
		t.Errorf("log file = %q, want component field", data)
	}
}

func TestGet_NopWhenUninitialised(t *testing.T) {
	prev := Global
	Global = nil
	t.Cleanup(func() { Global = prev })

	// Must not panic.
	Get().Info().Msg("discarded")
}
