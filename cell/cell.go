// Package cell holds the smallest units of the board: a coordinate used as a rotation pivot and
// a single occupied grid position with its tint.
package cell

import "fmt"

const (
	// Width is the number of columns on the board
	Width = 10
	// Height is the number of rows on the board. Row 0 is the top (spawn) row.
	Height = 20
)

// InBounds reports whether (x, y) addresses a cell on the board.
func InBounds(x, y int) bool {
	return x >= 0 && x < Width && y >= 0 && y < Height
}

// Coord is a point on the board. It may lie outside the board while rotation targets are being
// computed.
type Coord struct {
	X, Y int
}

// Cell is one block of a piece or of the pile, tagged with the tint it is drawn in.
type Cell struct {
	X, Y int
	Tint Tint
}

// Sentinel returns the uninitialized cell marker. It is never placed on the board.
func Sentinel() Cell {
	return Cell{X: -1, Y: -1, Tint: None}
}

func (c Cell) Coord() Coord {
	return Coord{X: c.X, Y: c.Y}
}

func (c Cell) InBounds() bool {
	return InBounds(c.X, c.Y)
}

func (c *Cell) MoveDown() bool {
	return c.moveTo(c.X, c.Y+1)
}

func (c *Cell) MoveLeft() bool {
	return c.moveTo(c.X-1, c.Y)
}

func (c *Cell) MoveRight() bool {
	return c.moveTo(c.X+1, c.Y)
}

func (c *Cell) moveTo(x, y int) bool {
	if !InBounds(x, y) {
		return false
	}
	c.X, c.Y = x, y
	return true
}

// ccwTarget is the position of c after a quarter turn counter-clockwise about pivot.
func (c Cell) ccwTarget(pivot Coord) (x, y int) {
	return pivot.X + (pivot.Y - c.Y), pivot.Y + (c.X - pivot.X)
}

// RotateCCW turns the cell a quarter turn counter-clockwise about pivot if the result is on the
// board.
func (c *Cell) RotateCCW(pivot Coord) bool {
	return c.moveTo(c.ccwTarget(pivot))
}

func (c Cell) CanRotateCCW(pivot Coord) bool {
	return InBounds(c.ccwTarget(pivot))
}

// RotateCW turns the cell a quarter turn clockwise about pivot as three counter-clockwise turns.
// If any intermediate turn leaves the board the cell is put back where it started.
func (c *Cell) RotateCW(pivot Coord) bool {
	oldX, oldY := c.X, c.Y
	for range 3 {
		if !c.RotateCCW(pivot) {
			c.X, c.Y = oldX, oldY
			return false
		}
	}
	return true
}

func (c Cell) CanRotateCW(pivot Coord) bool {
	probe := c
	for range 3 {
		if !probe.RotateCCW(pivot) {
			return false
		}
	}
	return true
}

// Equal compares positions only; tints are ignored.
func (c Cell) Equal(other Cell) bool {
	return c.X == other.X && c.Y == other.Y
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d, %d) %s", c.X, c.Y, c.Tint)
}
