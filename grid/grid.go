// Package grid is the pile of settled cells.
package grid

import (
	"github.com/deitrix/tetra/cell"
)

// Slot is one position of the grid. A zero Slot is empty.
type Slot struct {
	Filled bool
	Tint   cell.Tint
}

// Grid holds the settled cells, indexed by y*cell.Width+x. It is a plain value: copying a Grid
// copies the whole board.
type Grid struct {
	slots [cell.Width * cell.Height]Slot
}

func index(x, y int) int {
	return y*cell.Width + x
}

// At returns the cell at (x, y) and whether the position is occupied.
func (g *Grid) At(x, y int) (cell.Cell, bool) {
	if !cell.InBounds(x, y) {
		return cell.Sentinel(), false
	}
	s := g.slots[index(x, y)]
	if !s.Filled {
		return cell.Sentinel(), false
	}
	return cell.Cell{X: x, Y: y, Tint: s.Tint}, true
}

// Occupied reports whether (x, y) holds a settled cell. Positions off the board are never
// occupied.
func (g *Grid) Occupied(x, y int) bool {
	return cell.InBounds(x, y) && g.slots[index(x, y)].Filled
}

// Place stores c at its own position. Cells off the board are rejected.
func (g *Grid) Place(c cell.Cell) bool {
	if !c.InBounds() {
		return false
	}
	g.slots[index(c.X, c.Y)] = Slot{Filled: true, Tint: c.Tint}
	return true
}

func (g *Grid) IsRowFull(y int) bool {
	if y < 0 || y >= cell.Height {
		return false
	}
	for x := 0; x < cell.Width; x++ {
		if !g.slots[index(x, y)].Filled {
			return false
		}
	}
	return true
}

func (g *Grid) IsEmpty() bool {
	for _, s := range g.slots {
		if s.Filled {
			return false
		}
	}
	return true
}

// RowOccupied reports whether any cell in row y is settled.
func (g *Grid) RowOccupied(y int) bool {
	if y < 0 || y >= cell.Height {
		return false
	}
	for x := 0; x < cell.Width; x++ {
		if g.slots[index(x, y)].Filled {
			return true
		}
	}
	return false
}

// ClearRow empties row y and moves every row above it down by one. Row 0 ends up empty.
func (g *Grid) ClearRow(y int) {
	if y < 0 || y >= cell.Height {
		return
	}
	for row := y; row > 0; row-- {
		copy(g.slots[index(0, row):index(0, row+1)], g.slots[index(0, row-1):index(0, row)])
	}
	clear(g.slots[index(0, 0):index(0, 1)])
}

// DeleteAndCompact clears every full row, one at a time from the top down, and returns how many
// rows were cleared.
func (g *Grid) DeleteAndCompact() int {
	rows := 0
	for y := 0; y < cell.Height; y++ {
		if g.IsRowFull(y) {
			g.ClearRow(y)
			rows++
		}
	}
	return rows
}

// Cells returns every settled cell, top row first.
func (g *Grid) Cells() []cell.Cell {
	var out []cell.Cell
	for y := 0; y < cell.Height; y++ {
		for x := 0; x < cell.Width; x++ {
			if c, ok := g.At(x, y); ok {
				out = append(out, c)
			}
		}
	}
	return out
}

// Count returns the number of settled cells.
func (g *Grid) Count() int {
	n := 0
	for _, s := range g.slots {
		if s.Filled {
			n++
		}
	}
	return n
}
