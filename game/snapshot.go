package game

import (
	"time"

	"github.com/deitrix/tetra/cell"
	"github.com/deitrix/tetra/grid"
	"github.com/deitrix/tetra/piece"
)

// Snapshot is a read-only copy of the session for front ends. Changing it has no effect on the
// engine.
type Snapshot struct {
	Grid  grid.Grid
	Piece [4]cell.Cell
	// Ghost is where Piece would land if dropped now
	Ghost    [4]cell.Cell
	Shape    piece.Shape
	Score    int
	Rows     int
	Interval time.Duration
	State    State
	GameOver bool
	Final    int
}

func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Grid:     e.grid,
		Piece:    e.current.Cells,
		Ghost:    e.ghost().Cells,
		Shape:    e.current.Shape,
		Score:    e.score,
		Rows:     e.rows,
		Interval: e.interval,
		State:    e.state,
		GameOver: e.state == GameOver,
		Final:    e.final,
	}
}

func (e *Engine) ghost() piece.Piece {
	p := e.current
	for {
		next := p.Translated(0, 1)
		if !next.InBounds() || e.overlapsPile(next) {
			return p
		}
		p = next
	}
}

// DropDistance is the number of rows the falling piece can still fall.
func (e *Engine) DropDistance() int {
	return e.ghost().Cells[0].Y - e.current.Cells[0].Y
}
