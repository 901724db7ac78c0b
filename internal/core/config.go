package core

import "time"

// DefaultKeyHold outlasts common terminal auto-repeat delays (500 to 660 ms),
// so a held key is not released before its first repeat arrives.
const DefaultKeyHold = 600 * time.Millisecond

// RuntimeConfig contains configuration passed to the loop and its collaborators
// at initialization. It is derived from the YAML configuration and CLI flags.
type RuntimeConfig struct {
	Width    int     // Buffer width in pixels
	Height   int     // Buffer height in pixels
	Palette  Palette // Fixed two-entry palette
	TickRate int     // Frames per second the loop is paced to (default 60)

	// KeyHold is how long a terminal key stays held after its last press or repeat.
	// Backends with real key-up events ignore it.
	KeyHold time.Duration

	Player PlayerConfig
}

// PlayerConfig describes the player sprite and its motion.
type PlayerConfig struct {
	Sprite         string  // Sprite sheet path, empty for the built-in sheet
	FrameWidth     int     // Width of one animation frame in the sheet
	FrameHeight    int     // Height of one animation frame in the sheet
	FrameInterval  float64 // Seconds between walk frames
	Speed          float64 // Pixels per second
	StartX, StartY float64
	AlphaThreshold byte
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		Palette:  DefaultPalette(),
		TickRate: 60,
		KeyHold:  DefaultKeyHold,
		Player: PlayerConfig{
			FrameWidth:     16,
			FrameHeight:    16,
			FrameInterval:  0.1,
			Speed:          60,
			StartX:         152,
			StartY:         82,
			AlphaThreshold: DefaultAlphaThreshold,
		},
	}
}
