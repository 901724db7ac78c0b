package core

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Palette maps the two buffer color indices to RGBA colors.
// It is fixed at startup and handed once to the presenter.
type Palette [2]color.RGBA

// DefaultPalette returns a dark background with a warm foreground.
func DefaultPalette() Palette {
	return Palette{
		{R: 0x1d, G: 0x2b, B: 0x53, A: 0xff},
		{R: 0xff, G: 0xcc, B: 0xaa, A: 0xff},
	}
}

// Color returns the palette entry for index c.
// Indices other than 0 and 1 map to the background.
func (p Palette) Color(c byte) color.RGBA {
	if c == ColorForeground {
		return p[1]
	}
	return p[0]
}

// Colors returns the palette in image/color form, index for index.
func (p Palette) Colors() color.Palette {
	return color.Palette{p[0], p[1]}
}

// Hex returns the "#rrggbb" form of palette entry i.
func (p Palette) Hex(i int) string {
	c := p[i&1]
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHexColor parses "#rrggbb" or "#rrggbbaa" into an RGBA color.
func ParseHexColor(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 && len(h) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q: expected #rrggbb or #rrggbbaa", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	if len(h) == 6 {
		v = v<<8 | 0xff
	}
	return color.RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}
