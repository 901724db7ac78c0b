package core

import (
	"image"
)

// Default internal resolution of the pixel buffer.
const (
	DefaultWidth  = 320
	DefaultHeight = 180
)

// Color indices stored in the buffer.
const (
	ColorBackground byte = 0
	ColorForeground byte = 1
)

// Buffer is a fixed-size grid of single-byte color indices.
// It is the only artifact produced each frame and handed to a presenter.
type Buffer struct {
	width  int
	height int
	pix    []byte
}

// NewBuffer creates a cleared buffer with the given dimensions.
// Non-positive dimensions produce an empty buffer that discards every write.
func NewBuffer(width, height int) *Buffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Buffer{
		width:  width,
		height: height,
		pix:    make([]byte, width*height),
	}
}

// Width returns the buffer width in pixels.
func (b *Buffer) Width() int {
	return b.width
}

// Height returns the buffer height in pixels.
func (b *Buffer) Height() int {
	return b.height
}

// Len returns the number of pixels, always Width()*Height().
func (b *Buffer) Len() int {
	return len(b.pix)
}

// Clear resets every pixel to the background index.
func (b *Buffer) Clear() {
	clear(b.pix)
}

// Index maps a point to its linear buffer index: floor(y)*width + floor(x).
// The result is not bounds-checked.
func (b *Buffer) Index(x, y float64) int {
	return floor(y)*b.width + floor(x)
}

// SetIndex writes a color index at a linear position.
// Out-of-range positions are silently discarded.
func (b *Buffer) SetIndex(i int, c byte) {
	if i < 0 || i >= len(b.pix) {
		return
	}
	b.pix[i] = c
}

// Set writes a color index at pixel (x, y) using the linear index.
// Only the linear index is checked, so x past the right edge lands on the next row.
func (b *Buffer) Set(x, y int, c byte) {
	b.SetIndex(y*b.width+x, c)
}

// At returns the color index at pixel (x, y).
// Returns the background index for out-of-bounds coordinates.
func (b *Buffer) At(x, y int) byte {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return ColorBackground
	}
	return b.pix[y*b.width+x]
}

// Pixels returns the underlying row-major pixel slice.
// Callers must treat it as read-only.
func (b *Buffer) Pixels() []byte {
	return b.pix
}

// Count returns how many pixels hold color index c.
func (b *Buffer) Count(c byte) int {
	n := 0
	for _, p := range b.pix {
		if p == c {
			n++
		}
	}
	return n
}

// Paletted returns an image view sharing the buffer's pixels.
// Writes to the buffer are visible through the image.
func (b *Buffer) Paletted(p Palette) *image.Paletted {
	return &image.Paletted{
		Pix:     b.pix,
		Stride:  b.width,
		Rect:    image.Rect(0, 0, b.width, b.height),
		Palette: p.Colors(),
	}
}
