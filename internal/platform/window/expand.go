// Package window presents the pixel buffer in an SDL2 window.
// The SDL parts build only with -tags sdl; the pixel expansion is plain Go.
package window

import (
	"github.com/vovakirdan/spritebox/internal/core"
)

// BytesPerPixel is the size of one RGBA32 texel.
const BytesPerPixel = 4

// Expand writes buf as RGBA32 texels into dst through the palette.
// dst must hold at least buf.Len()*BytesPerPixel bytes.
func Expand(dst []byte, buf *core.Buffer, p core.Palette) {
	for i, c := range buf.Pixels() {
		rgba := p.Color(c)
		o := i * BytesPerPixel
		dst[o] = rgba.R
		dst[o+1] = rgba.G
		dst[o+2] = rgba.B
		dst[o+3] = rgba.A
	}
}
