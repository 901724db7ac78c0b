package core

// DrawRect fills r with the foreground index.
// Pixel columns cover [floor(x), floor(x+w)) and rows [floor(y), floor(y+h)).
// Writes falling outside the buffer are discarded.
func DrawRect(dst *Buffer, r Rect) {
	if r.Empty() {
		return
	}
	x0, x1 := floor(r.X), floor(r.Right())
	y0, y1 := floor(r.Y), floor(r.Bottom())
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			dst.Set(px, py, ColorForeground)
		}
	}
}

// DrawTexture performs a masked blit of the src region of tex to dest.
// Set texels overwrite the destination with the foreground index; unset texels
// leave it untouched. With flipX the source is sampled right to left within src.
// One texel maps to exactly one pixel.
func DrawTexture(dst *Buffer, tex *Texture, src Rect, dest Vec2, flipX bool) {
	if tex.Released() || src.Empty() {
		return
	}
	w, h := floor(src.W), floor(src.H)
	dx, dy := floor(dest.X), floor(dest.Y)

	for oy := 0; oy < h; oy++ {
		sy := floor(float64(oy) + src.Y)
		for ox := 0; ox < w; ox++ {
			var sx int
			if flipX {
				sx = floor(src.W-float64(ox)+src.X) - 1
			} else {
				sx = floor(float64(ox) + src.X)
			}

			si := sy*tex.W + sx
			if si < 0 || si >= len(tex.Mask) {
				continue
			}
			if tex.Mask[si] {
				dst.Set(dx+ox, dy+oy, ColorForeground)
			}
		}
	}
}
