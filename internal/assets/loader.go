// Package assets loads sprite images from disk and provides the built-in sprite sheet.
// Decoded images are normalized into core.Image with explicit channel count and
// bit depth so the rendering core can decide whether it accepts the format.
package assets

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"

	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder
	_ "golang.org/x/image/webp" // WebP decoder

	"golang.org/x/image/draw"

	"github.com/vovakirdan/spritebox/internal/core"
)

// Load reads and decodes the image file at path.
// Every failure is a *core.LoadError matching core.ErrLoadFailure.
func Load(path string) (core.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return core.Image{}, &core.LoadError{Path: path, Reason: "cannot read file", Err: err}
	}

	img, err := Decode(data)
	if err != nil {
		if le, ok := err.(*core.LoadError); ok {
			le.Path = path
			return core.Image{}, le
		}
		return core.Image{}, err
	}
	return img, nil
}

// Decode decodes an encoded image held in memory.
func Decode(data []byte) (core.Image, error) {
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return core.Image{}, &core.LoadError{Reason: "cannot decode image", Err: err}
	}

	img, ok := FromImage(src)
	if !ok {
		return core.Image{}, &core.LoadError{
			Reason: fmt.Sprintf("unsupported %s color model %T", format, src.ColorModel()),
		}
	}
	return img, nil
}

// FromImage normalizes a decoded Go image into a core.Image.
// Images with an alpha channel become 4-channel; 8-bit sources keep 8 bits,
// 16-bit sources report 16 bits. Opaque sources report 1 or 3 channels.
// Decoders return RGBA for files without alpha (RGB PNG, 24-bit BMP), so an
// opaque RGBA image is reported as 3 channels.
// Returns false for color models with no RGB meaning (CMYK).
func FromImage(src image.Image) (core.Image, bool) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	switch s := src.(type) {
	case *image.NRGBA:
		return core.Image{Width: w, Height: h, Channels: 4, BitDepth: 8, Pix: packNRGBA(s)}, true
	case *image.RGBA:
		if s.Opaque() {
			return core.Image{Width: w, Height: h, Channels: 3, BitDepth: 8, Pix: rgbOnly(toNRGBA(src))}, true
		}
		return core.Image{Width: w, Height: h, Channels: 4, BitDepth: 8, Pix: toNRGBA(src)}, true
	case *image.Paletted:
		if hasTranslucentEntry(s) {
			return core.Image{Width: w, Height: h, Channels: 4, BitDepth: 8, Pix: toNRGBA(src)}, true
		}
		return core.Image{Width: w, Height: h, Channels: 3, BitDepth: 8, Pix: rgbOnly(toNRGBA(src))}, true
	case *image.RGBA64:
		if s.Opaque() {
			return core.Image{Width: w, Height: h, Channels: 3, BitDepth: 16, Pix: rgbOnly64(toNRGBA64(src))}, true
		}
		return core.Image{Width: w, Height: h, Channels: 4, BitDepth: 16, Pix: toNRGBA64(src)}, true
	case *image.NRGBA64:
		return core.Image{Width: w, Height: h, Channels: 4, BitDepth: 16, Pix: toNRGBA64(src)}, true
	case *image.Gray:
		return core.Image{Width: w, Height: h, Channels: 1, BitDepth: 8, Pix: packGray(s)}, true
	case *image.Gray16:
		return core.Image{Width: w, Height: h, Channels: 1, BitDepth: 16, Pix: toGray16(s)}, true
	case *image.YCbCr:
		return core.Image{Width: w, Height: h, Channels: 3, BitDepth: 8, Pix: rgbOnly(toNRGBA(src))}, true
	case *image.CMYK:
		return core.Image{}, false
	default:
		if o, ok := src.(interface{ Opaque() bool }); ok && o.Opaque() {
			return core.Image{Width: w, Height: h, Channels: 3, BitDepth: 8, Pix: rgbOnly(toNRGBA(src))}, true
		}
		return core.Image{Width: w, Height: h, Channels: 4, BitDepth: 8, Pix: toNRGBA(src)}, true
	}
}

// packNRGBA returns the pixel bytes of s without stride padding.
func packNRGBA(s *image.NRGBA) []byte {
	b := s.Bounds()
	w, h := b.Dx(), b.Dy()
	out := make([]byte, 0, w*h*4)
	for y := 0; y < h; y++ {
		off := s.PixOffset(b.Min.X, b.Min.Y+y)
		out = append(out, s.Pix[off:off+w*4]...)
	}
	return out
}

func packGray(s *image.Gray) []byte {
	b := s.Bounds()
	w, h := b.Dx(), b.Dy()
	out := make([]byte, 0, w*h)
	for y := 0; y < h; y++ {
		off := s.PixOffset(b.Min.X, b.Min.Y+y)
		out = append(out, s.Pix[off:off+w]...)
	}
	return out
}

func toNRGBA(src image.Image) []byte {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Copy(dst, image.Point{}, src, b, draw.Src, nil)
	return dst.Pix
}

func toNRGBA64(src image.Image) []byte {
	b := src.Bounds()
	dst := image.NewNRGBA64(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Copy(dst, image.Point{}, src, b, draw.Src, nil)
	return dst.Pix
}

func toGray16(s *image.Gray16) []byte {
	b := s.Bounds()
	w, h := b.Dx(), b.Dy()
	out := make([]byte, 0, w*h*2)
	for y := 0; y < h; y++ {
		off := s.PixOffset(b.Min.X, b.Min.Y+y)
		out = append(out, s.Pix[off:off+w*2]...)
	}
	return out
}

// rgbOnly drops the alpha byte of every NRGBA pixel.
func rgbOnly(nrgba []byte) []byte {
	out := make([]byte, 0, len(nrgba)/4*3)
	for i := 0; i+3 < len(nrgba); i += 4 {
		out = append(out, nrgba[i], nrgba[i+1], nrgba[i+2])
	}
	return out
}

// rgbOnly64 drops the two alpha bytes of every NRGBA64 pixel.
func rgbOnly64(nrgba []byte) []byte {
	out := make([]byte, 0, len(nrgba)/8*6)
	for i := 0; i+7 < len(nrgba); i += 8 {
		out = append(out, nrgba[i:i+6]...)
	}
	return out
}

func hasTranslucentEntry(p *image.Paletted) bool {
	for _, c := range p.Palette {
		if _, _, _, a := c.RGBA(); a != 0xffff {
			return true
		}
	}
	return false
}
