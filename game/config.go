package game

import (
	"io"
	"log"
	"math/rand/v2"
	"time"
)

const (
	// PointsPerBlock is awarded for every cell merged into the pile
	PointsPerBlock = 10
	// PointsPerRow is awarded for every row cleared
	PointsPerRow = 100
	// PointsPerTotalClear is awarded when a landing leaves the pile empty
	PointsPerTotalClear = 500
	// PointsPerSpeedUp is the score step that shortens the tick interval
	PointsPerSpeedUp = 1000
)

// Config holds the tunables and collaborators of an Engine. Zero fields take the values from
// DefaultConfig.
type Config struct {
	// InitialInterval is the time between ticks at the start of a session
	InitialInterval time.Duration
	// IntervalStep is taken off the interval each time the score passes a new thousand
	IntervalStep time.Duration
	// MinInterval is the floor the interval never drops below
	MinInterval time.Duration
	// Rand drives piece generation. Seed it for repeatable sessions.
	Rand *rand.Rand
	// Ticker is told when the tick cadence changes. May be nil.
	Ticker Ticker
	// HighScores decides whether a final score is reported. May be nil, in which case every
	// score qualifies.
	HighScores HighScores
	// Logger receives engine diagnostics. Defaults to discarding them.
	Logger *log.Logger
	// OnEvent is called synchronously for every Event. May be nil.
	OnEvent func(Event)
}

func DefaultConfig() Config {
	return Config{
		InitialInterval: 800 * time.Millisecond,
		IntervalStep:    20 * time.Millisecond,
		MinInterval:     100 * time.Millisecond,
	}
}

// NewRand returns a generator seeded from seed, or from the runtime's entropy if seed is zero.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.InitialInterval <= 0 {
		c.InitialInterval = def.InitialInterval
	}
	if c.IntervalStep <= 0 {
		c.IntervalStep = def.IntervalStep
	}
	if c.MinInterval <= 0 {
		c.MinInterval = def.MinInterval
	}
	if c.MinInterval > c.InitialInterval {
		c.MinInterval = c.InitialInterval
	}
	if c.Rand == nil {
		c.Rand = NewRand(0)
	}
	if c.Logger == nil {
		c.Logger = log.New(io.Discard, "", 0)
	}
	return c
}
