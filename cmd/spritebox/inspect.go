package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/spritebox/internal/assets"
	"github.com/vovakirdan/spritebox/internal/core"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [sprite]",
	Short: "Show a sprite's alpha mask and frame layout",
	Long: `Load an image, derive its one-bit mask and print it.

'#' marks pixels whose alpha is above the threshold, '.' marks transparent ones.
Without an argument the configured sprite (or the built-in sheet) is shown.

Examples:
  spritebox inspect
  spritebox inspect ./hero.png`,
	Args: cobra.MaximumNArgs(1),
	Run:  runInspect,
}

func runInspect(_ *cobra.Command, args []string) {
	s := mustSettings(false)
	defer s.Close()

	pc := s.cfg.Runtime().Player
	if len(args) == 1 {
		pc.Sprite = args[0]
	}

	var (
		img core.Image
		err error
	)
	name := pc.Sprite
	if name == "" {
		name = "built-in sheet"
		img = assets.BuiltinSheet()
	} else if img, err = assets.Load(pc.Sprite); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s: %dx%d, %d channels, %d bit\n", name, img.Width, img.Height, img.Channels, img.BitDepth)

	tex, err := core.NewTexture(img, pc.AlphaThreshold)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer tex.Release()

	frameW, frameH := pc.FrameWidth, pc.FrameHeight
	if frameH <= 0 {
		frameH = tex.H
	}
	if frameW <= 0 {
		frameW = frameH
	}
	fmt.Printf("alpha threshold %d, frame %dx%d, %d frames\n", pc.AlphaThreshold, frameW, frameH, tex.W/max(frameW, 1))
	fmt.Println()

	writeMask(os.Stdout, tex, frameW)
}

// writeMask prints the mask row by row with a gap between frames.
func writeMask(w io.Writer, tex *core.Texture, frameW int) {
	var sb strings.Builder
	for y := range tex.H {
		for x := range tex.W {
			if frameW > 0 && x > 0 && x%frameW == 0 {
				sb.WriteByte(' ')
			}
			if tex.Opaque(x, y) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	io.WriteString(w, sb.String())
}
