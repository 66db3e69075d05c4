package conf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadTemplatesConfig_FillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.yaml")
	if err := os.WriteFile(path, []byte("daily: \"Shift day: {{weekday}}\"\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadTemplatesConfig(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if got := cfg.FormatDaily(time.Friday); got != "Shift day: Friday" {
		t.Errorf("Expected custom daily text, got %q", got)
	}
	if cfg.Weekly != DefaultTemplatesConfig().Weekly {
		t.Errorf("Expected default weekly template, got %q", cfg.Weekly)
	}
}

func TestLoadTemplatesConfig_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.yaml")
	if err := os.WriteFile(path, []byte("daily: [unterminated"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := LoadTemplatesConfig(path); err == nil {
		t.Error("Expected parse error")
	}
}

func TestFormatDebug(t *testing.T) {
	cfg := DefaultTemplatesConfig()
	out := cfg.FormatDebug(time.Saturday, 3, "2 minutes ago", 5)

	for _, want := range []string{"Saturday", "groups: 3", "2 minutes ago", "queued messages: 5"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in %q", want, out)
		}
	}
}
