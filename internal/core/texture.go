package core

import (
	"errors"
	"fmt"
)

// DefaultAlphaThreshold is the alpha value a source pixel must exceed to be opaque.
const DefaultAlphaThreshold byte = 100

// ErrLoadFailure is matched by every error reported while loading an asset.
var ErrLoadFailure = errors.New("load failure")

// LoadError describes why an image could not be turned into a texture.
type LoadError struct {
	Path   string // Source file, empty for in-memory images
	Reason string
	Err    error // Underlying cause, may be nil
}

func (e *LoadError) Error() string {
	msg := "load failure"
	if e.Path != "" {
		msg += " " + e.Path
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is reports ErrLoadFailure as matching any LoadError.
func (e *LoadError) Is(target error) bool {
	return target == ErrLoadFailure
}

// Image is a decoded image as delivered by an image loader.
// Pix is row-major with Channels*BitDepth/8 bytes per pixel.
type Image struct {
	Width    int
	Height   int
	Channels int
	BitDepth int
	Pix      []byte
}

// Texture is a one-bit opacity mask derived from an RGBA image.
// It is exclusively owned by whoever loaded it and released with Release.
type Texture struct {
	Mask []bool
	W, H int
}

// NewTexture derives a mask from img: a pixel is opaque when its alpha byte
// exceeds threshold. Only 4-channel, 8-bit images are accepted.
func NewTexture(img Image, threshold byte) (*Texture, error) {
	if img.Channels != 4 || img.BitDepth != 8 {
		return nil, &LoadError{
			Reason: fmt.Sprintf("unsupported pixel format: %d channels, %d bit (want 4 channels, 8 bit)",
				img.Channels, img.BitDepth),
		}
	}
	if img.Width <= 0 || img.Height <= 0 {
		return nil, &LoadError{Reason: fmt.Sprintf("invalid dimensions %dx%d", img.Width, img.Height)}
	}
	n := img.Width * img.Height
	if len(img.Pix) < n*4 {
		return nil, &LoadError{Reason: fmt.Sprintf("pixel data too short: %d bytes for %dx%d", len(img.Pix), img.Width, img.Height)}
	}

	t := &Texture{
		Mask: make([]bool, n),
		W:    img.Width,
		H:    img.Height,
	}
	for i := range t.Mask {
		t.Mask[i] = img.Pix[i*4+3] > threshold
	}
	return t, nil
}

// Opaque reports whether the texel at (x, y) is set.
// Out-of-range texels are transparent.
func (t *Texture) Opaque(x, y int) bool {
	if t == nil || x < 0 || x >= t.W || y < 0 || y >= t.H {
		return false
	}
	return t.Mask[y*t.W+x]
}

// Release drops the mask. A released texture draws nothing.
func (t *Texture) Release() {
	if t == nil {
		return
	}
	t.Mask = nil
	t.W, t.H = 0, 0
}

// Released reports whether Release has been called.
func (t *Texture) Released() bool {
	return t == nil || t.Mask == nil
}
