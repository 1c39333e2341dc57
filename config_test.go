// config_test.go
package cdecl

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFile)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func Test_Config_MissingFileIsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), ConfigFile))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("want defaults, got %+v", cfg)
	}
}

func Test_Config_HumanJSON(t *testing.T) {
	// Comments and trailing commas are fine: the file is hujson.
	path := writeConfig(t, `{
    // Shown before each input line.
    "prompt": "? ",
    "color": false,
    "history": 50,
}`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Prompt != "? " {
		t.Fatalf("prompt = %q", cfg.Prompt)
	}
	if cfg.Color == nil || *cfg.Color {
		t.Fatalf("color = %v, want explicit false", cfg.Color)
	}
	if cfg.History != 50 {
		t.Fatalf("history = %d", cfg.History)
	}
}

func Test_Config_EmptyPromptBackfilled(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `{"color": true}`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Prompt != DefaultConfig().Prompt {
		t.Fatalf("prompt = %q", cfg.Prompt)
	}
	if cfg.Color == nil || !*cfg.Color {
		t.Fatalf("color = %v, want explicit true", cfg.Color)
	}
	if cfg.History != DefaultConfig().History {
		t.Fatalf("history = %d, want the default", cfg.History)
	}
}

func Test_Config_MalformedFile(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `{nope`))
	if err == nil {
		t.Fatal("expected an error for a malformed file")
	}
	// Defaults still come back so the REPL can warn and continue.
	if cfg != DefaultConfig() {
		t.Fatalf("want defaults alongside the error, got %+v", cfg)
	}
}
