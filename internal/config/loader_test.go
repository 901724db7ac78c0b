package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedMatchesDefault(t *testing.T) {
	var embedded Config
	if err := yaml.Unmarshal(defaultYAML, &embedded); err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}

	def := DefaultConfig()
	if embedded.Display.Width != def.Display.Width || embedded.Display.Height != def.Display.Height {
		t.Errorf("embedded display %dx%d, expected %dx%d",
			embedded.Display.Width, embedded.Display.Height, def.Display.Width, def.Display.Height)
	}
	if embedded.Player.Speed != def.Player.Speed || embedded.Player.FrameInterval != def.Player.FrameInterval {
		t.Errorf("embedded player = %+v, expected %+v", embedded.Player, def.Player)
	}
	if len(embedded.Scene.Blocks) != len(def.Scene.Blocks) {
		t.Errorf("embedded scene has %d blocks, expected %d", len(embedded.Scene.Blocks), len(def.Scene.Blocks))
	}
	if err := embedded.Validate(); err != nil {
		t.Errorf("embedded defaults invalid: %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := `
display:
  width: 160
  height: 90
player:
  speed: 30
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	cfg, source, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if source != path {
		t.Errorf("source = %q, expected %q", source, path)
	}
	if cfg.Display.Width != 160 || cfg.Display.Height != 90 {
		t.Errorf("display = %dx%d, expected 160x90", cfg.Display.Width, cfg.Display.Height)
	}
	if cfg.Player.Speed != 30 {
		t.Errorf("speed = %v, expected 30", cfg.Player.Speed)
	}
	// Unset fields keep defaults
	if cfg.Loop.TickRate != 60 || len(cfg.Display.Palette) != 2 {
		t.Errorf("defaults not preserved: tick_rate=%d palette=%v", cfg.Loop.TickRate, cfg.Display.Palette)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() of a missing custom file should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("display: [unclosed"), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	if _, _, err := Load(bad); err == nil {
		t.Error("Load() of malformed YAML should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("display:\n  palette: [\"#000000\"]\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	_, _, err := Load(invalid)
	if err == nil || !strings.Contains(err.Error(), "palette") {
		t.Errorf("Load() error = %v, expected palette validation error", err)
	}
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, source, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if source != EmbeddedSource {
		t.Errorf("source = %q, expected %q", source, EmbeddedSource)
	}
	if cfg.Display.Width != 320 {
		t.Errorf("width = %d, expected 320", cfg.Display.Width)
	}
}

func TestLoadLocalConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)

	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatalf("MkdirAll() failed: %v", err)
	}
	if err := os.WriteFile(localConfigPath, []byte("loop:\n  tick_rate: 30\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	cfg, source, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if source != localConfigPath {
		t.Errorf("source = %q, expected %q", source, localConfigPath)
	}
	if cfg.Loop.TickRate != 30 {
		t.Errorf("tick_rate = %d, expected 30", cfg.Loop.TickRate)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Display.Width = 0 }},
		{"three colors", func(c *Config) { c.Display.Palette = []string{"#000000", "#111111", "#222222"} }},
		{"bad color", func(c *Config) { c.Display.Palette = []string{"#000000", "blue"} }},
		{"negative scale", func(c *Config) { c.Display.WindowScale = -1 }},
		{"zero tick rate", func(c *Config) { c.Loop.TickRate = 0 }},
		{"negative hold", func(c *Config) { c.Loop.KeyHoldMS = -5 }},
		{"negative frame", func(c *Config) { c.Player.FrameWidth = -1 }},
		{"zero interval", func(c *Config) { c.Player.FrameInterval = 0 }},
		{"negative speed", func(c *Config) { c.Player.Speed = -1 }},
		{"zero speed", func(c *Config) { c.Player.Speed = 0 }},
		{"alpha too high", func(c *Config) { c.Player.AlphaThreshold = 256 }},
	}

	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}

func TestRuntime(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Display.Palette = []string{"#000000", "#ffffff"}
	cfg.Loop.KeyHoldMS = 120

	rt := cfg.Runtime()
	if rt.Width != 320 || rt.Height != 180 || rt.TickRate != 60 {
		t.Errorf("Runtime() = %+v", rt)
	}
	if rt.KeyHold != 120*time.Millisecond {
		t.Errorf("KeyHold = %v, expected 120ms", rt.KeyHold)
	}
	if rt.Palette[1].R != 0xff || rt.Palette[0].R != 0 {
		t.Errorf("Palette = %+v", rt.Palette)
	}
	if rt.Player.AlphaThreshold != 100 {
		t.Errorf("AlphaThreshold = %d, expected 100", rt.Player.AlphaThreshold)
	}

	blocks := cfg.Blocks()
	if len(blocks) != 1 || blocks[0].W != 320 {
		t.Errorf("Blocks() = %+v", blocks)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Marshal(DefaultConfig())
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	cfg, err := parse(data)
	if err != nil {
		t.Fatalf("parse() failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("marshalled defaults invalid: %v", err)
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandHome("~/.spritebox/sessions.db")
	if err != nil {
		t.Fatalf("ExpandHome() failed: %v", err)
	}
	if want := filepath.Join(home, ".spritebox", "sessions.db"); got != want {
		t.Errorf("ExpandHome() = %q, expected %q", got, want)
	}

	if got, _ := ExpandHome("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandHome(/abs/path) = %q", got)
	}
}
