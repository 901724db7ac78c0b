// Package config provides YAML-based configuration loading and validation
// for spritebox.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/spritebox/internal/core"
)

// Config contains all user-tunable settings.
type Config struct {
	Display DisplayConfig `yaml:"display"`
	Loop    LoopConfig    `yaml:"loop"`
	Player  PlayerConfig  `yaml:"player"`
	Scene   SceneConfig   `yaml:"scene"`
}

// DisplayConfig defines the internal resolution and palette.
type DisplayConfig struct {
	Width       int      `yaml:"width"`
	Height      int      `yaml:"height"`
	Palette     []string `yaml:"palette"`      // Exactly two "#rrggbb" colors: background, foreground
	WindowScale int      `yaml:"window_scale"` // Initial window size multiplier for windowed backends
}

// LoopConfig defines frame pacing and terminal input behavior.
type LoopConfig struct {
	TickRate  int `yaml:"tick_rate"`   // Frames per second
	KeyHoldMS int `yaml:"key_hold_ms"` // Terminal key release delay in milliseconds
}

// PlayerConfig defines the player sprite and motion.
type PlayerConfig struct {
	Sprite         string  `yaml:"sprite"` // Empty uses the built-in sheet
	FrameWidth     int     `yaml:"frame_width"`
	FrameHeight    int     `yaml:"frame_height"`
	FrameInterval  float64 `yaml:"frame_interval"` // Seconds
	Speed          float64 `yaml:"speed"`          // Pixels per second
	StartX         float64 `yaml:"start_x"`
	StartY         float64 `yaml:"start_y"`
	AlphaThreshold int     `yaml:"alpha_threshold"` // Alpha must exceed this to be opaque
}

// SceneConfig lists static rectangles drawn behind the player.
type SceneConfig struct {
	Blocks []BlockConfig `yaml:"blocks"`
}

// BlockConfig is one filled rectangle in buffer coordinates.
type BlockConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// Validate checks that the configuration can drive a loop.
func (c Config) Validate() error {
	var errs []error

	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		errs = append(errs, fmt.Errorf("display size %dx%d must be positive", c.Display.Width, c.Display.Height))
	}
	if len(c.Display.Palette) != 2 {
		errs = append(errs, fmt.Errorf("palette must have exactly 2 colors, got %d", len(c.Display.Palette)))
	} else {
		for _, s := range c.Display.Palette {
			if _, err := core.ParseHexColor(s); err != nil {
				errs = append(errs, err)
			}
		}
	}
	if c.Display.WindowScale < 0 {
		errs = append(errs, fmt.Errorf("window_scale %d must not be negative", c.Display.WindowScale))
	}
	if c.Loop.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("tick_rate %d must be positive", c.Loop.TickRate))
	}
	if c.Loop.KeyHoldMS < 0 {
		errs = append(errs, fmt.Errorf("key_hold_ms %d must not be negative", c.Loop.KeyHoldMS))
	}
	if c.Player.FrameWidth < 0 || c.Player.FrameHeight < 0 {
		errs = append(errs, fmt.Errorf("frame size %dx%d must not be negative", c.Player.FrameWidth, c.Player.FrameHeight))
	}
	if c.Player.FrameInterval <= 0 {
		errs = append(errs, fmt.Errorf("frame_interval %v must be positive", c.Player.FrameInterval))
	}
	if c.Player.Speed <= 0 {
		errs = append(errs, fmt.Errorf("speed %v must be positive", c.Player.Speed))
	}
	if c.Player.AlphaThreshold < 0 || c.Player.AlphaThreshold > 255 {
		errs = append(errs, fmt.Errorf("alpha_threshold %d must be in [0, 255]", c.Player.AlphaThreshold))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}

// Palette parses the configured colors. Call Validate first.
func (c Config) Palette() core.Palette {
	p := core.DefaultPalette()
	for i := 0; i < len(c.Display.Palette) && i < 2; i++ {
		if col, err := core.ParseHexColor(c.Display.Palette[i]); err == nil {
			p[i] = col
		}
	}
	return p
}

// Runtime converts the configuration into the loop's runtime config.
func (c Config) Runtime() core.RuntimeConfig {
	return core.RuntimeConfig{
		Width:    c.Display.Width,
		Height:   c.Display.Height,
		Palette:  c.Palette(),
		TickRate: c.Loop.TickRate,
		KeyHold:  time.Duration(c.Loop.KeyHoldMS) * time.Millisecond,
		Player: core.PlayerConfig{
			Sprite:         c.Player.Sprite,
			FrameWidth:     c.Player.FrameWidth,
			FrameHeight:    c.Player.FrameHeight,
			FrameInterval:  c.Player.FrameInterval,
			Speed:          c.Player.Speed,
			StartX:         c.Player.StartX,
			StartY:         c.Player.StartY,
			AlphaThreshold: byte(c.Player.AlphaThreshold),
		},
	}
}

// Blocks returns the scene rectangles.
func (c Config) Blocks() []core.Rect {
	out := make([]core.Rect, 0, len(c.Scene.Blocks))
	for _, b := range c.Scene.Blocks {
		out = append(out, core.NewRect(b.X, b.Y, b.W, b.H))
	}
	return out
}
