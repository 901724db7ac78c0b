package main

import (
	"bytes"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/spritebox/internal/assets"
	"github.com/vovakirdan/spritebox/internal/core"
	"github.com/vovakirdan/spritebox/internal/registry"
	"github.com/vovakirdan/spritebox/internal/storage"
)

func TestWriteMask(t *testing.T) {
	img := core.Image{
		Width: 4, Height: 1, Channels: 4, BitDepth: 8,
		Pix: []byte{
			0, 0, 0, 255,
			0, 0, 0, 0,
			0, 0, 0, 101,
			0, 0, 0, 100,
		},
	}
	tex, err := core.NewTexture(img, core.DefaultAlphaThreshold)
	if err != nil {
		t.Fatalf("NewTexture() failed: %v", err)
	}

	var out bytes.Buffer
	writeMask(&out, tex, 2)
	if got, want := out.String(), "#. #.\n"; got != want {
		t.Errorf("writeMask() = %q, expected %q", got, want)
	}
}

func TestWriteMaskBuiltin(t *testing.T) {
	tex, err := core.NewTexture(assets.BuiltinSheet(), core.DefaultAlphaThreshold)
	if err != nil {
		t.Fatalf("NewTexture() failed: %v", err)
	}

	var out bytes.Buffer
	writeMask(&out, tex, assets.BuiltinFrameWidth)
	lines := bytes.Split(bytes.TrimRight(out.Bytes(), "\n"), []byte("\n"))
	if len(lines) != assets.BuiltinFrameHeight {
		t.Fatalf("writeMask() printed %d rows, expected %d", len(lines), assets.BuiltinFrameHeight)
	}
	// Two frames and one separator per row
	if w := len(lines[0]); w != assets.BuiltinFrameWidth*assets.BuiltinFrames+1 {
		t.Errorf("row width = %d, expected %d", w, assets.BuiltinFrameWidth*assets.BuiltinFrames+1)
	}
}

func TestSnapshotImage(t *testing.T) {
	snap := storage.Snapshot{
		Width:  2,
		Height: 1,
		Pixels: []byte{0, 1},
	}
	pal := core.Palette{
		color.RGBA{A: 255},
		color.RGBA{R: 255, G: 255, B: 255, A: 255},
	}.Colors()

	img, err := snapshotImage(snap, pal, 1)
	if err != nil {
		t.Fatalf("snapshotImage() failed: %v", err)
	}
	if img.Bounds().Dx() != 2 || img.ColorIndexAt(1, 0) != 1 {
		t.Errorf("unscaled image = %v", img.Pix)
	}

	scaled, err := snapshotImage(snap, pal, 3)
	if err != nil {
		t.Fatalf("snapshotImage() failed: %v", err)
	}
	if b := scaled.Bounds(); b.Dx() != 6 || b.Dy() != 3 {
		t.Fatalf("scaled bounds = %v, expected 6x3", b)
	}
	for y := range 3 {
		for x := range 6 {
			want := uint8(0)
			if x >= 3 {
				want = 1
			}
			if got := scaled.ColorIndexAt(x, y); got != want {
				t.Errorf("scaled(%d, %d) = %d, expected %d", x, y, got, want)
			}
		}
	}
}

func TestSnapshotImageCorrupt(t *testing.T) {
	pal := core.DefaultPalette().Colors()

	tests := []struct {
		name string
		snap storage.Snapshot
	}{
		{"truncated", storage.Snapshot{Width: 4, Height: 2, Pixels: []byte{0, 1, 0, 1, 0}}},
		{"too long", storage.Snapshot{Width: 1, Height: 1, Pixels: []byte{0, 1}}},
		{"zero size", storage.Snapshot{Width: 0, Height: 3}},
		{"bad index", storage.Snapshot{Width: 2, Height: 1, Pixels: []byte{0, 7}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, scale := range []int{1, 3} {
				if img, err := snapshotImage(tt.snap, pal, scale); err == nil {
					t.Errorf("snapshotImage(scale %d) = %v, expected an error", scale, img.Bounds())
				}
			}
		})
	}
}

func TestLoadSettingsOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	flagConfig, flagFPS, flagLogLevel = "", 30, "debug"
	flagLogFile = filepath.Join(t.TempDir(), "spritebox.log")
	t.Cleanup(func() {
		flagFPS, flagLogLevel, flagLogFile = 0, "info", ""
	})

	s, err := loadSettings(true)
	if err != nil {
		t.Fatalf("loadSettings() failed: %v", err)
	}
	defer s.Close()

	if s.cfg.Loop.TickRate != 30 {
		t.Errorf("TickRate = %d, expected 30", s.cfg.Loop.TickRate)
	}
	if s.source != "embedded" {
		t.Errorf("source = %q, expected embedded", s.source)
	}

	flagLogLevel = "loud"
	if _, err := loadSettings(false); err == nil {
		t.Error("loadSettings() with a bad level should fail")
	}
}

func TestTerminalBackendRegistered(t *testing.T) {
	b, err := registry.Lookup("tui")
	if err != nil {
		t.Fatalf("Lookup(tui) failed: %v", err)
	}
	if !b.OwnsTerminal {
		t.Error("tui backend should own the terminal")
	}
}
