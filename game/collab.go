package game

import "time"

// Ticker is the external scheduler that calls Engine.Tick. The engine owns the cadence: it calls
// Reset whenever ticks should start or change pace and Stop when they should cease.
type Ticker interface {
	Reset(interval time.Duration)
	Stop()
}

// HighScores is the part of the high-score table the engine consults at game over.
type HighScores interface {
	// QualifyingThreshold is the score a new entry must beat to make the table.
	QualifyingThreshold() int
}
