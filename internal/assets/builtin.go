package assets

import (
	"image"
	"image/color"

	"github.com/vovakirdan/spritebox/internal/core"
)

// Built-in sprite sheet dimensions: two 16x16 walk frames side by side.
const (
	BuiltinFrameWidth  = 16
	BuiltinFrameHeight = 16
	BuiltinFrames      = 2
)

// builtinFrames holds the walk cycle, '#' opaque and '.' transparent.
// The character faces right.
var builtinFrames = [BuiltinFrames][BuiltinFrameHeight]string{
	{
		"................",
		"......####......",
		".....######.....",
		".....###.#.#....",
		".....######.....",
		"......####......",
		".......##.......",
		".....######.....",
		"....########....",
		"....#.####.#....",
		"......####......",
		"......####......",
		".....##..##.....",
		".....#....#.....",
		"....##....##....",
		"................",
	},
	{
		"................",
		"......####......",
		".....######.....",
		".....###.#.#....",
		".....######.....",
		"......####......",
		".......##.......",
		".....######.....",
		"....########....",
		"....#.####.#....",
		"......####......",
		"......####......",
		"......#..#......",
		"......#..#......",
		"......##.##.....",
		"................",
	},
}

// BuiltinSheet returns the built-in sprite sheet as a decoded RGBA image.
func BuiltinSheet() core.Image {
	img, _ := FromImage(BuiltinSheetImage())
	return img
}

// BuiltinSheetImage renders the built-in frames into an NRGBA image.
func BuiltinSheetImage() *image.NRGBA {
	sheet := image.NewNRGBA(image.Rect(0, 0, BuiltinFrameWidth*BuiltinFrames, BuiltinFrameHeight))
	opaque := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	for f, rows := range builtinFrames {
		for y, row := range rows {
			for x, r := range row {
				if r == '#' {
					sheet.SetNRGBA(f*BuiltinFrameWidth+x, y, opaque)
				}
			}
		}
	}
	return sheet
}
