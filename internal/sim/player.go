// Package sim implements the simulation state: a player sprite that walks around
// the buffer driven by the four directional keys.
package sim

import (
	"github.com/vovakirdan/spritebox/internal/core"
)

// Motion and animation defaults.
const (
	DefaultSpeed         = 60.0 // Pixels per second
	DefaultFrameInterval = 0.1  // Seconds between walk frames
	WalkFrames           = 2    // Frames in the walk cycle
)

// Player is the walking sprite. It owns its texture.
type Player struct {
	texture *core.Texture

	frameW, frameH int
	frameIndex     int     // Current walk frame, in [0, WalkFrames)
	frameTimer     float64 // Seconds left before the next frame

	position core.Vec2
	flipX    bool

	speed         float64
	frameInterval float64
}

// NewPlayer creates a player that takes ownership of tex.
// Non-positive speed, interval or frame size fall back to the defaults
// (frame size defaults to the texture height, square frames).
func NewPlayer(tex *core.Texture, cfg core.PlayerConfig) *Player {
	p := &Player{
		texture:       tex,
		frameW:        cfg.FrameWidth,
		frameH:        cfg.FrameHeight,
		position:      core.Vec2{X: cfg.StartX, Y: cfg.StartY},
		speed:         cfg.Speed,
		frameInterval: cfg.FrameInterval,
	}
	if p.speed <= 0 {
		p.speed = DefaultSpeed
	}
	if p.frameInterval <= 0 {
		p.frameInterval = DefaultFrameInterval
	}
	if p.frameH <= 0 && tex != nil {
		p.frameH = tex.H
	}
	if p.frameW <= 0 {
		p.frameW = p.frameH
	}
	p.frameTimer = p.frameInterval
	return p
}

// Intent derives the raw movement intent from the held keys.
// Keys are evaluated Left, Right, Up, Down. Opposite keys cancel; flipX takes the
// last horizontal writer, so Right wins when both Left and Right are held.
// The returned flip reports (flip, set): set is false when no horizontal key is held.
func Intent(keys *core.KeyState) (intent core.Vec2, flip bool, flipSet bool) {
	if keys.Held(core.KeyLeft) {
		intent.X--
		flip, flipSet = true, true
	}
	if keys.Held(core.KeyRight) {
		intent.X++
		flip, flipSet = false, true
	}
	if keys.Held(core.KeyUp) {
		intent.Y--
	}
	if keys.Held(core.KeyDown) {
		intent.Y++
	}
	return intent, flip, flipSet
}

// Update advances the player by dt seconds using the held keys.
// Negative dt is treated as zero.
func (p *Player) Update(dt float64, keys *core.KeyState) {
	if dt < 0 {
		dt = 0
	}

	intent, flip, flipSet := Intent(keys)
	if flipSet {
		p.flipX = flip
	}

	// Walk animation is keyed to horizontal motion only.
	if intent.X != 0 {
		p.frameTimer -= dt
		if p.frameTimer <= 0 {
			p.frameIndex = (p.frameIndex + 1) % WalkFrames
			p.frameTimer = p.frameInterval
		}
	}

	dir := intent.Normalize()
	p.position = p.position.Add(dir.Scale(p.speed * dt))
}

// SourceRect returns the sheet region of the current walk frame.
func (p *Player) SourceRect() core.Rect {
	return core.NewRect(float64(p.frameIndex*p.frameW), 0, float64(p.frameW), float64(p.frameH))
}

// Draw blits the current frame at the player position.
func (p *Player) Draw(dst *core.Buffer) {
	core.DrawTexture(dst, p.texture, p.SourceRect(), p.position, p.flipX)
}

// Close releases the player's texture.
func (p *Player) Close() {
	p.texture.Release()
}

// Position returns the top-left corner of the sprite in buffer space.
func (p *Player) Position() core.Vec2 {
	return p.position
}

// Frame returns the current walk frame index.
func (p *Player) Frame() int {
	return p.frameIndex
}

// FrameTimer returns the seconds left before the next walk frame.
func (p *Player) FrameTimer() float64 {
	return p.frameTimer
}

// FlipX reports whether the sprite faces left.
func (p *Player) FlipX() bool {
	return p.flipX
}

// Texture returns the owned texture.
func (p *Player) Texture() *core.Texture {
	return p.texture
}
