package cell

import "image/color"

// Tint is the color tag carried by a cell. It is purely informational to the engine; front ends
// map it to whatever they draw with.
type Tint int

const (
	None Tint = iota
	Cyan
	Blue
	Orange
	Yellow
	Green
	Purple
	Red
	Ghost
	Wall
)

var tintColors = map[Tint]color.NRGBA{
	None:   {0x00, 0x00, 0x00, 0xff},
	Cyan:   {0x00, 0xf0, 0xf0, 0xff},
	Blue:   {0x00, 0x50, 0xf0, 0xff},
	Orange: {0xf0, 0xa0, 0x00, 0xff},
	Yellow: {0xf0, 0xf0, 0x00, 0xff},
	Green:  {0x00, 0xf0, 0x00, 0xff},
	Purple: {0xa0, 0x00, 0xf0, 0xff},
	Red:    {0xf0, 0x00, 0x00, 0xff},
	Ghost:  {0x80, 0x80, 0x80, 0xff},
	Wall:   {0x50, 0x50, 0x50, 0xff},
}

var tintNames = map[Tint]string{
	None:   "none",
	Cyan:   "cyan",
	Blue:   "blue",
	Orange: "orange",
	Yellow: "yellow",
	Green:  "green",
	Purple: "purple",
	Red:    "red",
	Ghost:  "ghost",
	Wall:   "wall",
}

func (t Tint) NRGBA() color.NRGBA {
	if c, ok := tintColors[t]; ok {
		return c
	}
	return tintColors[None]
}

func (t Tint) String() string {
	if name, ok := tintNames[t]; ok {
		return name
	}
	return "unknown"
}
