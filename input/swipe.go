// Package input decodes touch gestures into engine commands.
package input

import "github.com/deitrix/tetra/game"

const (
	// TapSlop is the horizontal travel, in pixels, below which a gesture is not a sideways swipe
	TapSlop = 40
	// DropTravel is the vertical travel, in pixels, above which a gesture is a drop
	DropTravel = 100
)

// Swipe is one touch from press to release, in screen pixels.
type Swipe struct {
	DownX, DownY float64
	UpX, UpY     float64
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// Command decodes the swipe. Short horizontal travel is either a vertical swipe (hard drop) or a
// tap, which rotates clockwise right of midline and counter-clockwise left of it. Anything else
// moves the piece towards the direction of travel. ok is false for a tap exactly on the midline.
func (s Swipe) Command(midline float64) (cmd game.Command, ok bool) {
	dx := s.UpX - s.DownX
	if abs(dx) < TapSlop {
		switch {
		case abs(s.UpY-s.DownY) > DropTravel:
			return game.HardDrop, true
		case s.UpX > midline:
			return game.RotateCW, true
		case s.UpX < midline:
			return game.RotateCCW, true
		}
		return 0, false
	}
	if dx > 0 {
		return game.MoveRight, true
	}
	return game.MoveLeft, true
}
