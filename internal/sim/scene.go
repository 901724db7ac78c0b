package sim

import (
	"github.com/vovakirdan/spritebox/internal/assets"
	"github.com/vovakirdan/spritebox/internal/core"
	"github.com/vovakirdan/spritebox/internal/loop"
)

// Block is a static filled rectangle, such as a floor strip.
type Block struct {
	Rect core.Rect
}

// Draw fills the block.
func (b Block) Draw(dst *core.Buffer) {
	core.DrawRect(dst, b.Rect)
}

// LoadPlayer loads the configured sprite sheet (or the built-in one when no path
// is set), derives its mask and returns a player owning the texture.
func LoadPlayer(cfg core.PlayerConfig) (*Player, error) {
	var (
		img core.Image
		err error
	)
	if cfg.Sprite == "" {
		img = assets.BuiltinSheet()
		if cfg.FrameWidth <= 0 {
			cfg.FrameWidth = assets.BuiltinFrameWidth
		}
		if cfg.FrameHeight <= 0 {
			cfg.FrameHeight = assets.BuiltinFrameHeight
		}
	} else {
		img, err = assets.Load(cfg.Sprite)
		if err != nil {
			return nil, err
		}
	}

	tex, err := core.NewTexture(img, cfg.AlphaThreshold)
	if err != nil {
		if le, ok := err.(*core.LoadError); ok && le.Path == "" {
			le.Path = cfg.Sprite
		}
		return nil, err
	}
	return NewPlayer(tex, cfg), nil
}

// Drawables returns the scene in draw order: blocks first, the player on top.
func Drawables(blocks []core.Rect, player *Player) []loop.Drawable {
	d := make([]loop.Drawable, 0, len(blocks)+1)
	for _, r := range blocks {
		d = append(d, Block{Rect: r})
	}
	if player != nil {
		d = append(d, player)
	}
	return d
}
