package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestInit(t *testing.T) {
	tests := []struct {
		name       string
		debug      bool
		wantLevel  log.Level
		wantStderr bool
	}{
		{"normal", false, log.WarnLevel, false},
		{"debug", true, log.DebugLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configDir := filepath.Join(t.TempDir(), "config")
			var stderr bytes.Buffer
			if err := Init(Config{Debug: tt.debug, ConfigDir: configDir, Stderr: &stderr}); err != nil {
				t.Fatalf("Init() failed: %v", err)
			}
			t.Cleanup(func() { Logger = nil })

			if Logger.GetLevel() != tt.wantLevel {
				t.Errorf("level = %v, want %v", Logger.GetLevel(), tt.wantLevel)
			}

			Debug("block changed", "activity", "Deep focus")
			Warn("reminder state unreadable")

			if got := strings.Contains(stderr.String(), "block changed"); got != tt.wantStderr {
				t.Errorf("debug line on stderr = %v, want %v", got, tt.wantStderr)
			}
			data, err := os.ReadFile(Path(configDir))
			if err != nil {
				t.Fatalf("log file not written: %v", err)
			}
			if !strings.Contains(string(data), "reminder state unreadable") {
				t.Errorf("warning missing from log file: %q", data)
			}
		})
	}
}

func TestHelpersBeforeInit(t *testing.T) {
	Logger = nil
	// must not panic
	Debug("ignored")
	Info("ignored")
	Warn("ignored")
	Error("ignored")
}
