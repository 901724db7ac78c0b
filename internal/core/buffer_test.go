package core

import (
	"image/color"
	"testing"
)

func TestNewBuffer(t *testing.T) {
	b := NewBuffer(DefaultWidth, DefaultHeight)

	if b.Width() != 320 {
		t.Errorf("Width() = %d, expected 320", b.Width())
	}
	if b.Height() != 180 {
		t.Errorf("Height() = %d, expected 180", b.Height())
	}
	if b.Len() != 320*180 {
		t.Errorf("Len() = %d, expected %d", b.Len(), 320*180)
	}
	if n := b.Count(ColorBackground); n != b.Len() {
		t.Errorf("New buffer should be all background, got %d of %d", n, b.Len())
	}
}

func TestNewBufferNegativeSize(t *testing.T) {
	b := NewBuffer(-5, 10)
	if b.Len() != 0 {
		t.Errorf("Len() = %d, expected 0", b.Len())
	}
	b.Set(0, 0, ColorForeground) // Should not panic
}

func TestBufferIndex(t *testing.T) {
	b := NewBuffer(320, 180)

	tests := []struct {
		x, y float64
		want int
	}{
		{0, 0, 0},
		{1, 0, 1},
		{0, 1, 320},
		{10.9, 2.5, 2*320 + 10},
		{-0.5, 0, -1},
		{319, 179, 320*180 - 1},
	}

	for _, tt := range tests {
		if got := b.Index(tt.x, tt.y); got != tt.want {
			t.Errorf("Index(%v, %v) = %d, expected %d", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestBufferSetOutOfRange(t *testing.T) {
	b := NewBuffer(10, 10)

	b.SetIndex(-1, ColorForeground)  // Should not panic
	b.SetIndex(100, ColorForeground) // Should not panic
	b.Set(0, -1, ColorForeground)    // Should not panic
	b.Set(0, 10, ColorForeground)    // Should not panic

	if n := b.Count(ColorForeground); n != 0 {
		t.Errorf("Out of range writes changed %d pixels", n)
	}

	// Out of bounds At returns background
	if b.At(-1, 0) != ColorBackground || b.At(10, 0) != ColorBackground {
		t.Error("Out of bounds At should return background")
	}
}

func TestBufferSetWrapsPastRightEdge(t *testing.T) {
	b := NewBuffer(10, 10)

	// Only the linear index is checked: (10, 0) is index 10, i.e. (0, 1).
	b.Set(10, 0, ColorForeground)
	if b.At(0, 1) != ColorForeground {
		t.Error("Set(10, 0) should land on (0, 1)")
	}
}

func TestBufferClear(t *testing.T) {
	b := NewBuffer(10, 10)
	for i := 0; i < b.Len(); i++ {
		b.SetIndex(i, ColorForeground)
	}

	b.Clear()

	if n := b.Count(ColorForeground); n != 0 {
		t.Errorf("After Clear, expected no foreground pixels, got %d", n)
	}
}

func TestBufferPaletted(t *testing.T) {
	b := NewBuffer(4, 3)
	p := DefaultPalette()
	img := b.Paletted(p)

	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 3 {
		t.Fatalf("Bounds() = %v, expected 4x3", img.Bounds())
	}

	b.Set(2, 1, ColorForeground)
	if img.ColorIndexAt(2, 1) != ColorForeground {
		t.Error("Paletted image should share pixels with the buffer")
	}
	if got := color.RGBAModel.Convert(img.At(2, 1)); got != p[1] {
		t.Errorf("At(2, 1) = %v, expected %v", got, p[1])
	}
}
