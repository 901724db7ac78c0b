// Package core provides the rendering core of spritebox: the indexed pixel buffer,
// textures, rasterization and input types. It contains no external dependencies
// so that rendering and simulation stay pure and testable.
package core

import "math"

// Rect is an axis-aligned rectangle in buffer or texture coordinates.
// Components may be fractional; rasterization floors them to pixel indices.
type Rect struct {
	X, Y float64 // Top-left corner position
	W, H float64 // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Empty reports whether the rectangle covers no area.
// Negative sizes are treated as empty.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Vec2 is a 2D vector in buffer space. Y grows downward.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns v scaled to unit length, or the zero vector if v is zero.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// floor converts a float coordinate to the pixel index containing it.
func floor(v float64) int {
	return int(math.Floor(v))
}
