// Package clock provides the tick sources that drive a game.Engine. The engine decides the
// cadence; these types only keep time.
package clock

import "time"

// Frames converts frame time into ticks for loops that run at a fixed frame rate, such as
// ebiten's Update.
type Frames struct {
	interval time.Duration
	elapsed  time.Duration
	running  bool
}

// Reset starts counting from zero at the new interval.
func (f *Frames) Reset(interval time.Duration) {
	f.interval = interval
	f.elapsed = 0
	f.running = interval > 0
}

func (f *Frames) Stop() {
	f.running = false
	f.elapsed = 0
}

func (f *Frames) Running() bool {
	return f.running
}

func (f *Frames) Interval() time.Duration {
	return f.interval
}

// Advance adds dt to the elapsed time and returns how many ticks are due.
func (f *Frames) Advance(dt time.Duration) int {
	if !f.running {
		return 0
	}
	f.elapsed += dt
	n := int(f.elapsed / f.interval)
	f.elapsed -= time.Duration(n) * f.interval
	return n
}

// Wall is a wall-clock tick source backed by a time.Ticker. It starts stopped.
type Wall struct {
	ticker   *time.Ticker
	interval time.Duration
}

func NewWall() *Wall {
	t := time.NewTicker(time.Hour)
	t.Stop()
	return &Wall{ticker: t}
}

func (w *Wall) Reset(interval time.Duration) {
	w.interval = interval
	w.ticker.Reset(interval)
}

func (w *Wall) Stop() {
	w.ticker.Stop()
}

func (w *Wall) Interval() time.Duration {
	return w.interval
}

// C delivers one value per tick.
func (w *Wall) C() <-chan time.Time {
	return w.ticker.C
}
