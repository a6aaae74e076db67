package piece

import (
	"fmt"
	"math/rand/v2"

	"github.com/deitrix/tetra/cell"
)

// Shape identifies one of the seven tetrominoes.
type Shape int

const (
	I Shape = iota
	J
	L
	O
	S
	T
	Z
)

// Count is the number of shapes Rand draws from.
const Count = 7

// spawnX is the column of the left edge of each shape's bounding box when it spawns.
const spawnX = cell.Width/2 - 2

type shapeDef struct {
	// Offsets are relative to the spawn anchor (spawnX, 0)
	Offsets [4]cell.Coord
	// Pivot is the index of the cell the piece rotates about, or -1 if it does not rotate.
	Pivot int
	Tint  cell.Tint
	Name  string
}

var shapes = [Count]shapeDef{
	I: {
		Offsets: [4]cell.Coord{{0, 0}, {1, 0}, {2, 0}, {3, 0}},
		Pivot:   1,
		Tint:    cell.Cyan,
		Name:    "I",
	},
	J: {
		Offsets: [4]cell.Coord{{0, 0}, {0, 1}, {1, 1}, {2, 1}},
		Pivot:   2,
		Tint:    cell.Blue,
		Name:    "J",
	},
	L: {
		Offsets: [4]cell.Coord{{2, 0}, {0, 1}, {1, 1}, {2, 1}},
		Pivot:   2,
		Tint:    cell.Orange,
		Name:    "L",
	},
	O: {
		Offsets: [4]cell.Coord{{1, 0}, {2, 0}, {1, 1}, {2, 1}},
		Pivot:   -1,
		Tint:    cell.Yellow,
		Name:    "O",
	},
	S: {
		Offsets: [4]cell.Coord{{1, 0}, {2, 0}, {0, 1}, {1, 1}},
		Pivot:   3,
		Tint:    cell.Green,
		Name:    "S",
	},
	T: {
		Offsets: [4]cell.Coord{{1, 0}, {0, 1}, {1, 1}, {2, 1}},
		Pivot:   2,
		Tint:    cell.Purple,
		Name:    "T",
	},
	Z: {
		Offsets: [4]cell.Coord{{0, 0}, {1, 0}, {1, 1}, {2, 1}},
		Pivot:   2,
		Tint:    cell.Red,
		Name:    "Z",
	},
}

func (s Shape) Valid() bool {
	return s >= 0 && s < Count
}

func (s Shape) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Shape(%d)", int(s))
	}
	return shapes[s].Name
}

func (s Shape) Tint() cell.Tint {
	if !s.Valid() {
		return cell.None
	}
	return shapes[s].Tint
}

// Piece is a falling tetromino: four cells that always move and rotate together.
type Piece struct {
	Cells [4]cell.Cell
	Shape Shape
	// pivot indexes Cells, so the rotation centre travels with the piece.
	pivot int
}

// New places shape at the top centre of the board.
func New(shape Shape) Piece {
	if !shape.Valid() {
		panic(fmt.Sprintf("piece: invalid shape %d", int(shape)))
	}
	def := shapes[shape]
	p := Piece{Shape: shape, pivot: def.Pivot}
	for i, off := range def.Offsets {
		p.Cells[i] = cell.Cell{X: spawnX + off.X, Y: off.Y, Tint: def.Tint}
	}
	return p
}

// Rand draws a shape uniformly at random. Every spawn is independent; there is no bag.
func Rand(r *rand.Rand) Piece {
	return New(Shape(r.IntN(Count)))
}

// Pivot returns the coordinate the piece rotates about. ok is false for shapes that do not
// rotate.
func (p Piece) Pivot() (pivot cell.Coord, ok bool) {
	if p.pivot < 0 {
		return cell.Coord{}, false
	}
	return p.Cells[p.pivot].Coord(), true
}

func (p Piece) Contains(x, y int) bool {
	for _, c := range p.Cells {
		if c.X == x && c.Y == y {
			return true
		}
	}
	return false
}

func (p Piece) InBounds() bool {
	for _, c := range p.Cells {
		if !c.InBounds() {
			return false
		}
	}
	return true
}

// Translated returns a copy of the piece shifted by (dx, dy) without any bounds checks.
func (p Piece) Translated(dx, dy int) Piece {
	for i := range p.Cells {
		p.Cells[i].X += dx
		p.Cells[i].Y += dy
	}
	return p
}

func (p *Piece) MoveDown() bool {
	return p.move(0, 1)
}

func (p *Piece) MoveLeft() bool {
	return p.move(-1, 0)
}

func (p *Piece) MoveRight() bool {
	return p.move(1, 0)
}

func (p *Piece) move(dx, dy int) bool {
	moved := p.Translated(dx, dy)
	if !moved.InBounds() {
		return false
	}
	*p = moved
	return true
}

// RotateClockwise turns every cell a quarter turn clockwise about the pivot. Nothing moves unless
// all four cells can make the turn.
func (p *Piece) RotateClockwise() bool {
	pivot, ok := p.Pivot()
	if !ok {
		return false
	}
	for _, c := range p.Cells {
		if !c.CanRotateCW(pivot) {
			return false
		}
	}
	for i := range p.Cells {
		p.Cells[i].RotateCW(pivot)
	}
	return true
}

func (p *Piece) RotateCounterClockwise() bool {
	pivot, ok := p.Pivot()
	if !ok {
		return false
	}
	for _, c := range p.Cells {
		if !c.CanRotateCCW(pivot) {
			return false
		}
	}
	for i := range p.Cells {
		p.Cells[i].RotateCCW(pivot)
	}
	return true
}
