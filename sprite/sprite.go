package sprite

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Size is the edge length of the generated sprites in pixels. Draw calls scale them to the cell size.
const Size = 64

// bevel is the width of the shaded border of a cell sprite
const bevel = Size / 8

var Cell, Ghost *ebiten.Image

var spriteMap = map[string]**ebiten.Image{
	"cell":  &Cell,
	"ghost": &Ghost,
}

// Load builds the sprites and parses the fonts. Sprites are white so that draw calls can tint
// them with a color scale.
func Load() error {
	for name, img := range spriteMap {
		px, err := pixels(name)
		if err != nil {
			return fmt.Errorf("building %s: %w", name, err)
		}
		*img = ebiten.NewImageFromImage(px)
	}
	if err := loadFonts(); err != nil {
		return fmt.Errorf("loading fonts: %w", err)
	}
	return nil
}

func pixels(name string) (*image.NRGBA, error) {
	img := image.NewNRGBA(image.Rect(0, 0, Size, Size))
	switch name {
	case "cell":
		for y := 0; y < Size; y++ {
			for x := 0; x < Size; x++ {
				img.SetNRGBA(x, y, cellShade(x, y))
			}
		}
	case "ghost":
		for y := 0; y < Size; y++ {
			for x := 0; x < Size; x++ {
				if onBorder(x, y, bevel/2) {
					img.SetNRGBA(x, y, color.NRGBA{0xff, 0xff, 0xff, 0xff})
				}
			}
		}
	default:
		return nil, fmt.Errorf("unknown sprite %q", name)
	}
	return img, nil
}

func onBorder(x, y, width int) bool {
	return x < width || y < width || x >= Size-width || y >= Size-width
}

// cellShade lights the top and left edges and darkens the bottom and right edges.
func cellShade(x, y int) color.NRGBA {
	switch {
	case !onBorder(x, y, bevel):
		return color.NRGBA{0xe0, 0xe0, 0xe0, 0xff}
	case x < bevel && y < Size-x, y < bevel && x < Size-y:
		return color.NRGBA{0xff, 0xff, 0xff, 0xff}
	default:
		return color.NRGBA{0x90, 0x90, 0x90, 0xff}
	}
}
