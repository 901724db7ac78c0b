package tui

import (
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"

	"github.com/vovakirdan/spritebox/internal/core"
)

// halfBlock paints the top half of a cell in the foreground color and the
// bottom half in the background color, so one cell shows two pixels.
const halfBlock = "▀"

// Presenter stretches a pixel buffer onto terminal cells.
// The palette is fixed at construction.
type Presenter struct {
	palette core.Palette
	styles  [2][2]lipgloss.Style // [top][bottom]
	scaled  *image.Paletted
}

// NewPresenter creates a presenter. A nil renderer uses the lipgloss default,
// SSH sessions pass the session renderer so colors match the client terminal.
func NewPresenter(p core.Palette, r *lipgloss.Renderer) *Presenter {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	pr := &Presenter{palette: p}
	for top := range 2 {
		for bottom := range 2 {
			pr.styles[top][bottom] = r.NewStyle().
				Foreground(lipgloss.Color(p.Hex(top))).
				Background(lipgloss.Color(p.Hex(bottom)))
		}
	}
	return pr
}

// Fit returns the largest pixel size with the buffer's aspect ratio that fits
// into cols x rows cells. Each cell holds two vertical pixels.
func Fit(bufW, bufH, cols, rows int) (w, h int) {
	if bufW <= 0 || bufH <= 0 || cols <= 0 || rows <= 0 {
		return 0, 0
	}
	availH := rows * 2
	// Compare cols/bufW with availH/bufH without floats.
	if cols*bufH <= availH*bufW {
		w = cols
		h = bufH * cols / bufW
	} else {
		h = availH
		w = bufW * availH / bufH
	}
	return max(w, 1), max(h, 1)
}

// Render stretches buf with nearest-neighbor sampling into cols x rows cells.
// The result is not padded; callers place it.
func (p *Presenter) Render(buf *core.Buffer, cols, rows int) string {
	w, h := Fit(buf.Width(), buf.Height(), cols, rows)
	if w == 0 || h == 0 {
		return ""
	}

	src := buf.Paletted(p.palette)

	// An odd height leaves the last bottom half on the background color.
	bounds := image.Rect(0, 0, w, h+h%2)
	if p.scaled == nil || p.scaled.Bounds() != bounds {
		p.scaled = image.NewPaletted(bounds, src.Palette)
	} else {
		clear(p.scaled.Pix)
	}

	draw.NearestNeighbor.Scale(p.scaled, image.Rect(0, 0, w, h), src, src.Bounds(), draw.Src, nil)

	cellRows := bounds.Dy() / 2
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(cellRows * (w*len(halfBlock) + 32))

	for cy := range cellRows {
		if cy > 0 {
			sb.WriteByte('\n')
		}
		top := p.scaled.Pix[(2*cy)*p.scaled.Stride:]
		bottom := p.scaled.Pix[(2*cy+1)*p.scaled.Stride:]

		// Group consecutive cells with the same pair of colors
		x := 0
		for x < w {
			t, b := top[x]&1, bottom[x]&1
			start := x
			for x < w && top[x]&1 == t && bottom[x]&1 == b {
				x++
			}
			sb.WriteString(p.styles[t][b].Render(strings.Repeat(halfBlock, x-start)))
		}
	}
	return sb.String()
}
