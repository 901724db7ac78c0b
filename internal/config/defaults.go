package config

import (
	_ "embed"
)

//go:embed defaults/spritebox.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration.
// It matches defaults/spritebox.yaml and is used if the embedded file cannot be parsed.
func DefaultConfig() Config {
	return Config{
		Display: DisplayConfig{
			Width:       320,
			Height:      180,
			Palette:     []string{"#1d2b53", "#ffccaa"},
			WindowScale: 3,
		},
		Loop: LoopConfig{
			TickRate:  60,
			KeyHoldMS: 600,
		},
		Player: PlayerConfig{
			Sprite:         "",
			FrameWidth:     16,
			FrameHeight:    16,
			FrameInterval:  0.1,
			Speed:          60,
			StartX:         152,
			StartY:         82,
			AlphaThreshold: 100,
		},
		Scene: SceneConfig{
			Blocks: []BlockConfig{
				{X: 0, Y: 172, W: 320, H: 8},
			},
		},
	}
}
