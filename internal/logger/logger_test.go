package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestInitCreatesLogDir(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "data")
	if err := Init(Config{DataDir: dataDir}); err != nil {
		t.Fatalf("init logger: %v", err)
	}
	t.Cleanup(func() { Logger = nil })

	if _, err := os.Stat(filepath.Join(dataDir, "logs")); err != nil {
		t.Fatalf("expected log dir: %v", err)
	}
	if Logger == nil {
		t.Fatal("expected logger after init")
	}
	Warn("test warning", "key", "value")
}

func TestHelpersAreNilSafe(t *testing.T) {
	Logger = nil
	Debug("d")
	Info("i")
	Warn("w")
	Error("e")
}

func TestUseWriterFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	UseWriter(&buf, log.WarnLevel)
	t.Cleanup(func() { Logger = nil })

	Info("hidden")
	Warn("shown", "category", "exercise")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "category=exercise") {
		t.Fatalf("expected warn line with key/value, got %q", out)
	}
}
