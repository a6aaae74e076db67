package game

import (
	"bytes"
	"log"
	"testing"
	"time"

	"github.com/deitrix/tetra/cell"
	"github.com/deitrix/tetra/grid"
	"github.com/deitrix/tetra/piece"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTicker struct {
	resets []time.Duration
	stops  int
}

func (f *fakeTicker) Reset(d time.Duration) { f.resets = append(f.resets, d) }
func (f *fakeTicker) Stop()                 { f.stops++ }

type fixedThreshold int

func (f fixedThreshold) QualifyingThreshold() int { return int(f) }

type harness struct {
	*Engine
	ticker *fakeTicker
	events []Event
}

func newHarness(t *testing.T, shape piece.Shape, opts ...func(*Config)) *harness {
	t.Helper()
	h := &harness{ticker: &fakeTicker{}}
	cfg := DefaultConfig()
	cfg.Rand = NewRand(42)
	cfg.Ticker = h.ticker
	cfg.OnEvent = func(ev Event) { h.events = append(h.events, ev) }
	for _, opt := range opts {
		opt(&cfg)
	}
	h.Engine = New(cfg)
	h.current = piece.New(shape)
	return h
}

func (h *harness) fillRow(y int, skip ...int) {
	for x := 0; x < cell.Width; x++ {
		skipped := false
		for _, s := range skip {
			skipped = skipped || s == x
		}
		if !skipped {
			h.grid.Place(cell.Cell{X: x, Y: y, Tint: cell.Red})
		}
	}
}

func (h *harness) cellCoords() [4]cell.Coord {
	var out [4]cell.Coord
	for i, c := range h.current.Cells {
		out[i] = c.Coord()
	}
	return out
}

func rowColumns(g grid.Grid, y int) []int {
	var cols []int
	for x := 0; x < cell.Width; x++ {
		if g.Occupied(x, y) {
			cols = append(cols, x)
		}
	}
	return cols
}

func TestEngine_New(t *testing.T) {
	h := newHarness(t, piece.T)
	assert.Equal(t, Active, h.State())
	assert.Equal(t, 0, h.Score())
	assert.Equal(t, 800*time.Millisecond, h.Interval())
	assert.Equal(t, []time.Duration{800 * time.Millisecond}, h.ticker.resets)
	assert.True(t, h.current.InBounds())
}

func TestEngine_MoveAtWalls(t *testing.T) {
	h := newHarness(t, piece.L)
	for h.Handle(MoveLeft) {
	}
	before := h.cellCoords()
	assert.Equal(t, 0, min(before[0].X, before[1].X, before[2].X, before[3].X))
	assert.False(t, h.Handle(MoveLeft))
	assert.Equal(t, before, h.cellCoords())

	for h.Handle(MoveRight) {
	}
	before = h.cellCoords()
	assert.Equal(t, cell.Width-1, max(before[0].X, before[1].X, before[2].X, before[3].X))
	assert.False(t, h.Handle(MoveRight))
	assert.Equal(t, before, h.cellCoords())
	assert.True(t, h.grid.IsEmpty(), "lateral moves never land the piece")
}

func TestEngine_InvalidDirection(t *testing.T) {
	h := newHarness(t, piece.T)
	before := h.cellCoords()
	for _, dir := range []int{-2, 2, 5, 100} {
		assert.False(t, h.Move(dir), "direction %d", dir)
	}
	assert.False(t, h.Handle(Command(42)))
	assert.Equal(t, before, h.cellCoords())
	assert.True(t, h.grid.IsEmpty())
}

func TestEngine_LateralMoveIntoPile(t *testing.T) {
	h := newHarness(t, piece.O)
	// O spawns on columns 4 and 5
	h.grid.Place(cell.Cell{X: 6, Y: 1})
	before := h.cellCoords()
	assert.False(t, h.Move(Right))
	assert.Equal(t, before, h.cellCoords())
	assert.Equal(t, 1, h.grid.Count())
	assert.True(t, h.Move(Left))
}

func TestEngine_TickLandsOnFloor(t *testing.T) {
	h := newHarness(t, piece.I)
	for i := 0; i < cell.Height-1; i++ {
		require.True(t, h.Tick(), "tick %d", i)
	}
	assert.Equal(t, 0, h.DropDistance())
	assert.False(t, h.Tick())

	assert.Equal(t, []int{3, 4, 5, 6}, rowColumns(h.grid, cell.Height-1))
	assert.Equal(t, 4*PointsPerBlock, h.Score())
	assert.Equal(t, Active, h.State())
	require.Len(t, h.events, 1)
	assert.Equal(t, Event{Kind: Landed, Score: 40}, h.events[0])
}

func TestEngine_SoftDropLandsOnPile(t *testing.T) {
	h := newHarness(t, piece.O)
	h.grid.Place(cell.Cell{X: 4, Y: 10})
	for h.Handle(SoftDrop) {
	}
	assert.True(t, h.grid.Occupied(4, 9))
	assert.True(t, h.grid.Occupied(5, 8))
	assert.Equal(t, 5, h.grid.Count())
}

func TestEngine_HardDrop(t *testing.T) {
	h := newHarness(t, piece.T)
	assert.Equal(t, cell.Height-2, h.DropDistance())
	assert.True(t, h.Handle(HardDrop))
	assert.Equal(t, []int{4}, rowColumns(h.grid, cell.Height-2))
	assert.Equal(t, []int{3, 4, 5}, rowColumns(h.grid, cell.Height-1))
	assert.Equal(t, 40, h.Score())
}

func TestEngine_RowClearCompaction(t *testing.T) {
	h := newHarness(t, piece.O)
	h.fillRow(19, 4, 5)
	h.grid.Place(cell.Cell{X: 3, Y: 18, Tint: cell.Blue})

	h.Handle(HardDrop)

	assert.Equal(t, 4*PointsPerBlock+PointsPerRow, h.Score())
	assert.Equal(t, []int{3, 4, 5}, rowColumns(h.grid, 19), "old row 18 moved down")
	assert.Empty(t, rowColumns(h.grid, 18))
	assert.Equal(t, 1, h.Rows())
	c, _ := h.grid.At(3, 19)
	assert.Equal(t, cell.Blue, c.Tint)
}

func TestEngine_RowClearLeavesRowAboveIntact(t *testing.T) {
	h := newHarness(t, piece.I)
	h.fillRow(19, 4, 5, 6, 7)
	h.grid.Place(cell.Cell{X: 3, Y: 18, Tint: cell.Blue})
	require.True(t, h.Handle(MoveRight))

	h.Handle(HardDrop)

	assert.Equal(t, 4*PointsPerBlock+PointsPerRow, h.Score())
	assert.Equal(t, []int{3}, rowColumns(h.grid, 19))
	assert.Empty(t, rowColumns(h.grid, 18))
	assert.Equal(t, 1, h.grid.Count())
	assert.Equal(t, 1, h.Rows())
	c, _ := h.grid.At(3, 19)
	assert.Equal(t, cell.Blue, c.Tint)
}

func TestEngine_TotalClearBonus(t *testing.T) {
	h := newHarness(t, piece.I)
	h.fillRow(19, 3, 4, 5, 6)

	h.Handle(HardDrop)

	assert.True(t, h.grid.IsEmpty())
	assert.Equal(t, 4*PointsPerBlock+PointsPerRow+PointsPerTotalClear, h.Score())
	require.NotEmpty(t, h.events)
	assert.Equal(t, Event{Kind: Landed, Score: 640, Rows: 1, TotalClear: true}, h.events[0])
}

func TestEngine_RotateRoundTrip(t *testing.T) {
	h := newHarness(t, piece.J)
	for range 5 {
		h.Tick()
	}
	start := h.cellCoords()
	require.True(t, h.Handle(RotateCW))
	assert.NotEqual(t, start, h.cellCoords())
	require.True(t, h.Handle(RotateCCW))
	assert.Equal(t, start, h.cellCoords())

	require.True(t, h.Handle(RotateCCW))
	require.True(t, h.Handle(RotateCW))
	assert.Equal(t, start, h.cellCoords())
}

func TestEngine_RotateIntoPile(t *testing.T) {
	h := newHarness(t, piece.T)
	for range 5 {
		h.Tick()
	}
	// T now covers (4,5) (3,6) (4,6) (5,6); both quarter turns need (4,7).
	h.grid.Place(cell.Cell{X: 4, Y: 7})
	start := h.cellCoords()
	assert.False(t, h.Handle(RotateCW))
	assert.Equal(t, start, h.cellCoords())
	assert.False(t, h.Handle(RotateCCW))
	assert.Equal(t, start, h.cellCoords())
}

func TestEngine_GameOver(t *testing.T) {
	tests := []struct {
		name      string
		threshold HighScores
		final     int
	}{
		{"no table", nil, 40},
		{"beats threshold", fixedThreshold(39), 40},
		{"ties threshold", fixedThreshold(40), 0},
		{"below threshold", fixedThreshold(1000), 0},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			h := newHarness(t, piece.O, func(c *Config) { c.HighScores = test.threshold })
			for y := 2; y < cell.Height; y++ {
				h.grid.Place(cell.Cell{X: 4, Y: y})
			}

			assert.False(t, h.Tick())

			assert.Equal(t, GameOver, h.State())
			assert.Equal(t, test.final, h.Final())
			assert.Equal(t, 1, h.ticker.stops)
			last := h.events[len(h.events)-1]
			assert.Equal(t, Event{Kind: Ended, Score: 40, Final: test.final}, last)

			snap := h.Snapshot()
			assert.True(t, snap.GameOver)
			assert.False(t, h.Tick())
			for _, cmd := range []Command{MoveLeft, MoveRight, SoftDrop, HardDrop, RotateCW, RotateCCW, Pause, Unpause} {
				assert.False(t, h.Handle(cmd), "%v after game over", cmd)
			}
			assert.False(t, h.Move(Down))
			assert.Equal(t, snap, h.Snapshot())
		})
	}
}

func TestEngine_BlockOut(t *testing.T) {
	h := newHarness(t, piece.O)
	h.grid.Place(cell.Cell{X: 4, Y: 1})
	assert.True(t, h.checkGameOver())
	assert.Equal(t, GameOver, h.State())
}

func TestEngine_SpeedUp(t *testing.T) {
	h := newHarness(t, piece.I)
	h.score = 950
	h.fillRow(19, 3, 4, 5, 6)
	h.grid.Place(cell.Cell{X: 0, Y: 18})

	h.Handle(HardDrop)

	require.Equal(t, 1090, h.Score())
	assert.Equal(t, 780*time.Millisecond, h.Interval(), "one step per thousand, however far past it")
	assert.Equal(t, 780*time.Millisecond, h.ticker.resets[len(h.ticker.resets)-1])

	resets := len(h.ticker.resets)
	h.current = piece.New(piece.T)
	h.Handle(HardDrop)
	assert.Equal(t, 1130, h.Score())
	assert.Equal(t, 780*time.Millisecond, h.Interval())
	assert.Len(t, h.ticker.resets, resets)

	h.score = 1990
	h.current = piece.New(piece.O)
	h.Handle(HardDrop)
	assert.Equal(t, 760*time.Millisecond, h.Interval())

	var kinds []EventKind
	for _, ev := range h.events {
		kinds = append(kinds, ev.Kind)
	}
	assert.Equal(t, []EventKind{Landed, SpeedUp, Landed, Landed, SpeedUp}, kinds)
}

func TestEngine_SpeedUpFloor(t *testing.T) {
	h := newHarness(t, piece.O, func(c *Config) {
		c.InitialInterval = 110 * time.Millisecond
		c.MinInterval = 100 * time.Millisecond
	})
	for _, score := range []int{990, 1990, 2990} {
		h.score = score
		h.grid = grid.Grid{}
		h.current = piece.New(piece.O)
		h.Handle(HardDrop)
		assert.GreaterOrEqual(t, h.Interval(), 100*time.Millisecond)
	}
	assert.Equal(t, 100*time.Millisecond, h.Interval())
}

func TestEngine_Pause(t *testing.T) {
	h := newHarness(t, piece.S)
	h.Tick()
	require.True(t, h.Handle(Pause))
	assert.Equal(t, Paused, h.State())
	assert.Equal(t, 1, h.ticker.stops)

	snap := h.Snapshot()
	for range 50 {
		assert.False(t, h.Tick())
	}
	assert.False(t, h.Handle(MoveLeft))
	assert.False(t, h.Handle(HardDrop))
	assert.False(t, h.Handle(RotateCW))
	assert.True(t, h.Handle(Pause), "pausing twice is harmless")
	assert.Equal(t, 1, h.ticker.stops)
	assert.Equal(t, snap, h.Snapshot())

	require.True(t, h.Handle(Unpause))
	assert.Equal(t, Active, h.State())
	assert.Equal(t, h.Interval(), h.ticker.resets[len(h.ticker.resets)-1])
	assert.False(t, h.Handle(Unpause))
	assert.True(t, h.Tick())
}

func TestEngine_Reset(t *testing.T) {
	h := newHarness(t, piece.O)
	for y := 2; y < cell.Height; y++ {
		h.grid.Place(cell.Cell{X: 4, Y: y})
	}
	h.Tick()
	require.Equal(t, GameOver, h.State())

	h.Reset()
	assert.Equal(t, Active, h.State())
	assert.Equal(t, 0, h.Score())
	assert.Equal(t, 0, h.Final())
	assert.True(t, h.grid.IsEmpty())
	assert.Equal(t, 800*time.Millisecond, h.ticker.resets[len(h.ticker.resets)-1])
}

func TestEngine_Snapshot(t *testing.T) {
	h := newHarness(t, piece.I)
	snap := h.Snapshot()
	assert.Equal(t, piece.I, snap.Shape)
	assert.Equal(t, Active, snap.State)
	for i, c := range snap.Ghost {
		assert.Equal(t, cell.Height-1, c.Y)
		assert.Equal(t, snap.Piece[i].X, c.X)
	}

	snap.Grid.Place(cell.Cell{X: 0, Y: 0})
	snap.Piece[0].X = 9
	assert.True(t, h.grid.IsEmpty())
	assert.Equal(t, 3, h.current.Cells[0].X)
}

func TestEngine_Logging(t *testing.T) {
	var buf bytes.Buffer
	h := newHarness(t, piece.I, func(c *Config) { c.Logger = log.New(&buf, "", 0) })
	h.Handle(HardDrop)
	h.Handle(Pause)
	assert.Contains(t, buf.String(), "landed I: 0 rows cleared")
	assert.Contains(t, buf.String(), "paused at score 40")
}

func TestEngine_LandSkipsOffBoardCells(t *testing.T) {
	var buf bytes.Buffer
	h := newHarness(t, piece.I, func(c *Config) { c.Logger = log.New(&buf, "", 0) })
	h.current.Cells[3] = cell.Cell{X: 6, Y: cell.Height, Tint: cell.Cyan}

	h.Tick()

	assert.Equal(t, 3, h.grid.Count())
	assert.Equal(t, 3*PointsPerBlock, h.Score())
	assert.Contains(t, buf.String(), "dropped off-board cell (6, 20) cyan")
}

// TestEngine_RandomPlay drives the engine with a fixed stream of commands and checks the
// invariants that must hold in every reachable state.
func TestEngine_RandomPlay(t *testing.T) {
	h := newHarness(t, piece.T, func(c *Config) { c.HighScores = fixedThreshold(0) })
	r := NewRand(7)
	commands := []Command{MoveLeft, MoveRight, SoftDrop, HardDrop, RotateCW, RotateCCW}
	sessions := 0
	lastScore, lastInterval := h.Score(), h.Interval()
	for range 20000 {
		if r.IntN(3) == 0 {
			h.Tick()
		} else {
			h.Handle(commands[r.IntN(len(commands))])
		}
		for _, c := range h.grid.Cells() {
			require.True(t, c.InBounds(), "pile cell %v", c)
		}
		require.True(t, h.current.InBounds(), "piece %v", h.current.Cells)
		require.GreaterOrEqual(t, h.Score(), lastScore)
		require.LessOrEqual(t, h.Interval(), lastInterval)
		for y := 0; y < cell.Height; y++ {
			require.False(t, h.grid.IsRowFull(y), "full row %d left on the pile", y)
		}
		lastScore, lastInterval = h.Score(), h.Interval()

		if h.State() == GameOver {
			require.Equal(t, h.Score(), h.Final())
			sessions++
			h.Reset()
			lastScore, lastInterval = h.Score(), h.Interval()
		}
	}
	assert.Positive(t, sessions)
}

func TestStringers(t *testing.T) {
	assert.Equal(t, "hard-drop", HardDrop.String())
	assert.Equal(t, "Command(99)", Command(99).String())
	assert.Equal(t, "paused", Paused.String())
	assert.Equal(t, "game over", GameOver.String())
	assert.Equal(t, "speed-up", SpeedUp.String())
}
