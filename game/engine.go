// Package game is the falling-block engine: it owns the pile and the falling piece, resolves moves
// and rotations against them, merges landed pieces, clears rows, keeps score and decides when the
// session is over. It never keeps time itself; an external Ticker calls Tick.
package game

import (
	"time"

	"github.com/deitrix/tetra/cell"
	"github.com/deitrix/tetra/grid"
	"github.com/deitrix/tetra/piece"
)

type Engine struct {
	cfg Config
	// grid holds the settled cells, not including the falling piece
	grid grid.Grid
	// current is the piece being controlled by the player
	current piece.Piece
	// score is the current score of the session
	score int
	// rows is the number of rows cleared in the session
	rows int
	// interval is the current time between ticks
	interval time.Duration
	// lastThousand is score/1000 as of the last speed-up
	lastThousand int
	state        State
	// final is the score reported at game over, 0 if it did not qualify
	final int
}

// New starts a session.
func New(cfg Config) *Engine {
	e := &Engine{cfg: cfg.withDefaults()}
	e.Reset()
	return e
}

// Reset discards the current session and starts a new one with an empty pile.
func (e *Engine) Reset() {
	e.grid = grid.Grid{}
	e.score = 0
	e.rows = 0
	e.lastThousand = 0
	e.final = 0
	e.interval = e.cfg.InitialInterval
	e.state = Active
	e.current = piece.Rand(e.cfg.Rand)
	if e.cfg.Ticker != nil {
		e.cfg.Ticker.Reset(e.interval)
	}
	e.cfg.Logger.Printf("new session: %v piece, interval %v", e.current.Shape, e.interval)
}

func (e *Engine) State() State {
	return e.state
}

func (e *Engine) Score() int {
	return e.score
}

func (e *Engine) Rows() int {
	return e.rows
}

func (e *Engine) Interval() time.Duration {
	return e.interval
}

// Final is the score reported when the session ended: the score itself if it beat the high-score
// threshold, otherwise 0. It is 0 while the session is running.
func (e *Engine) Final() int {
	return e.final
}

// Tick advances the falling piece by one row. It is a no-op unless the session is active.
func (e *Engine) Tick() bool {
	if e.state != Active {
		return false
	}
	return e.move(Down)
}

// Move shifts the falling piece one step in direction (Left, Down or Right). Any other direction is
// rejected.
func (e *Engine) Move(direction int) bool {
	if e.state != Active {
		return false
	}
	if direction < Left || direction > Right {
		return false
	}
	return e.move(direction)
}

// Handle applies one player command and reports whether it had an effect.
func (e *Engine) Handle(cmd Command) bool {
	switch cmd {
	case Pause:
		return e.Pause()
	case Unpause:
		return e.Unpause()
	}
	if e.state != Active {
		return false
	}
	switch cmd {
	case MoveLeft:
		return e.move(Left)
	case MoveRight:
		return e.move(Right)
	case SoftDrop:
		return e.move(Down)
	case HardDrop:
		return e.hardDrop()
	case RotateCW:
		return e.rotate(true)
	case RotateCCW:
		return e.rotate(false)
	}
	return false
}

// Pause stops ticks until Unpause. Pausing a paused session is a no-op that still reports true.
func (e *Engine) Pause() bool {
	switch e.state {
	case Paused:
		return true
	case GameOver:
		return false
	}
	e.state = Paused
	if e.cfg.Ticker != nil {
		e.cfg.Ticker.Stop()
	}
	e.cfg.Logger.Printf("paused at score %d", e.score)
	return true
}

// Unpause resumes ticks at the current interval.
func (e *Engine) Unpause() bool {
	if e.state != Paused {
		return false
	}
	e.state = Active
	if e.cfg.Ticker != nil {
		e.cfg.Ticker.Reset(e.interval)
	}
	e.cfg.Logger.Printf("resumed at interval %v", e.interval)
	return true
}

// move shifts the piece by one step. A piece that cannot move down lands; a piece that cannot move
// sideways stays where it is.
func (e *Engine) move(direction int) bool {
	dy := 0
	if direction == Down {
		dy = 1
	}
	blocked := false
	for _, c := range e.current.Cells {
		x, y := c.X+direction, c.Y+dy
		if !cell.InBounds(x, y) || e.grid.Occupied(x, y) {
			blocked = true
			break
		}
	}
	if blocked {
		if direction == Down {
			e.land()
		}
		return false
	}
	switch direction {
	case Left:
		return e.current.MoveLeft()
	case Right:
		return e.current.MoveRight()
	default:
		return e.current.MoveDown()
	}
}

func (e *Engine) hardDrop() bool {
	for e.move(Down) {
	}
	return true
}

// rotate turns the piece about its pivot. A turn that would leave the board is refused by the
// piece itself; a turn that would overlap the pile is undone here.
func (e *Engine) rotate(clockwise bool) bool {
	p := e.current
	var ok bool
	if clockwise {
		ok = p.RotateClockwise()
	} else {
		ok = p.RotateCounterClockwise()
	}
	if !ok || e.overlapsPile(p) {
		return false
	}
	e.current = p
	return true
}

func (e *Engine) overlapsPile(p piece.Piece) bool {
	for _, c := range p.Cells {
		if e.grid.Occupied(c.X, c.Y) {
			return true
		}
	}
	return false
}

// land merges the falling piece into the pile, clears full rows, scores the landing, spawns the
// next piece and checks whether the session is over.
func (e *Engine) land() {
	for _, c := range e.current.Cells {
		if !e.grid.Place(c) {
			e.cfg.Logger.Printf("dropped off-board cell %v", c)
			continue
		}
		e.score += PointsPerBlock
	}
	rows := e.grid.DeleteAndCompact()
	e.score += rows * PointsPerRow
	e.rows += rows
	totalClear := e.grid.IsEmpty()
	if totalClear {
		e.score += PointsPerTotalClear
	}
	e.cfg.Logger.Printf("landed %v: %d rows cleared, total clear %t, score %d", e.current.Shape, rows, totalClear, e.score)
	e.emit(Event{Kind: Landed, Score: e.score, Rows: rows, TotalClear: totalClear})

	e.speedUp()
	e.current = piece.Rand(e.cfg.Rand)
	e.checkGameOver()
}

// speedUp shortens the interval once each time the score reaches a new thousand.
func (e *Engine) speedUp() {
	thousands := e.score / PointsPerSpeedUp
	if thousands <= e.lastThousand {
		return
	}
	e.lastThousand = thousands
	next := max(e.interval-e.cfg.IntervalStep, e.cfg.MinInterval)
	if next == e.interval {
		return
	}
	e.interval = next
	if e.cfg.Ticker != nil {
		e.cfg.Ticker.Reset(e.interval)
	}
	e.cfg.Logger.Printf("speed up at score %d: interval %v", e.score, e.interval)
	e.emit(Event{Kind: SpeedUp, Score: e.score, Interval: e.interval})
}

// checkGameOver ends the session if the pile reaches the top row or the new piece spawned on top
// of the pile.
func (e *Engine) checkGameOver() bool {
	// A spawn overlapping the pile (block-out) ends the session even with row 0 still clear.
	if !e.grid.RowOccupied(0) && !e.overlapsPile(e.current) {
		return false
	}
	e.state = GameOver
	e.final = e.qualifyingScore()
	if e.cfg.Ticker != nil {
		e.cfg.Ticker.Stop()
	}
	e.cfg.Logger.Printf("game over: score %d, reported %d", e.score, e.final)
	e.emit(Event{Kind: Ended, Score: e.score, Final: e.final})
	return true
}

func (e *Engine) qualifyingScore() int {
	if e.cfg.HighScores == nil || e.score > e.cfg.HighScores.QualifyingThreshold() {
		return e.score
	}
	return 0
}

func (e *Engine) emit(ev Event) {
	if e.cfg.OnEvent != nil {
		e.cfg.OnEvent(ev)
	}
}
