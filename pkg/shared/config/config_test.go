package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Inventory.GridWidth != 6 || cfg.Inventory.GridHeight != 4 || cfg.Inventory.QuickSlots != 6 {
		t.Fatalf("unexpected inventory defaults %+v", cfg.Inventory)
	}
	if cfg.Server.TickInterval() != time.Second/30 {
		t.Fatalf("unexpected tick interval %v", cfg.Server.TickInterval())
	}
	if cfg.Storage.Backend != "file" || cfg.Log.Format != "text" {
		t.Fatalf("unexpected defaults %+v %+v", cfg.Storage, cfg.Log)
	}
	if len(cfg.Inventory.StarterKit) == 0 {
		t.Fatalf("expected a default starter kit")
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
server:
  tick_rate: 20
inventory:
  grid_width: 8
  quick_slots: 4
  starter_kit:
    - id: arrow_wooden
      quantity: 15
storage:
  backend: sqlite
  compress: true
log:
  level: debug
  format: json
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.TickRate != 20 || cfg.Inventory.GridWidth != 8 || cfg.Inventory.GridHeight != 4 {
		t.Fatalf("file values not applied: %+v %+v", cfg.Server, cfg.Inventory)
	}
	if len(cfg.Inventory.StarterKit) != 1 || cfg.Inventory.StarterKit[0].Quantity != 15 {
		t.Fatalf("starter kit not read: %+v", cfg.Inventory.StarterKit)
	}
	if cfg.Storage.Backend != "sqlite" || !cfg.Storage.Compress {
		t.Fatalf("storage not read: %+v", cfg.Storage)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "inventory:\n  grid_width: 8\n")
	t.Setenv("EMBERHOLD_INVENTORY_GRID_WIDTH", "10")
	t.Setenv("EMBERHOLD_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Inventory.GridWidth != 10 {
		t.Fatalf("env override ignored, grid width %d", cfg.Inventory.GridWidth)
	}
	if cfg.Log.Level != "warn" {
		t.Fatalf("env override ignored, level %q", cfg.Log.Level)
	}
}

func TestEnvParseError(t *testing.T) {
	t.Setenv("EMBERHOLD_SERVER_TICK_RATE", "fast")
	_, err := Load("")
	if err == nil || !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env error, got %v", err)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad yaml", "server: [\n"},
		{"negative tick", "server:\n  tick_rate: -1\n"},
		{"negative grid", "inventory:\n  grid_width: -2\n"},
		{"too many quick slots", "inventory:\n  quick_slots: 11\n"},
		{"bad backend", "storage:\n  backend: redis\n"},
		{"bad log format", "log:\n  format: xml\n"},
		{"bad kit", "inventory:\n  starter_kit:\n    - id: arrow_wooden\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.body)); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("missing file accepted")
	}
}

func TestExampleConfigLoads(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "..", "emberhold.example.yaml"))
	if err != nil {
		t.Fatalf("load example: %v", err)
	}
	if cfg.Storage.Backend != "sqlite" || !cfg.Storage.Compress || cfg.Inventory.StarterGold != 25 {
		t.Fatalf("unexpected example config %+v", cfg)
	}
}
