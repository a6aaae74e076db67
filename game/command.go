package game

import (
	"fmt"
	"time"
)

// Command is an abstract player input, already decoded from keys or gestures.
type Command int

const (
	MoveLeft Command = iota
	MoveRight
	SoftDrop
	HardDrop
	RotateCW
	RotateCCW
	Pause
	Unpause
)

var commandNames = [...]string{
	MoveLeft:  "move-left",
	MoveRight: "move-right",
	SoftDrop:  "soft-drop",
	HardDrop:  "hard-drop",
	RotateCW:  "rotate-cw",
	RotateCCW: "rotate-ccw",
	Pause:     "pause",
	Unpause:   "unpause",
}

func (c Command) String() string {
	if c < 0 || int(c) >= len(commandNames) {
		return fmt.Sprintf("Command(%d)", int(c))
	}
	return commandNames[c]
}

// Direction values accepted by Engine.Move.
const (
	Left  = -1
	Down  = 0
	Right = 1
)

// State is the session state.
type State int

const (
	Active State = iota
	Paused
	GameOver
)

func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case Paused:
		return "paused"
	case GameOver:
		return "game over"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

type EventKind int

const (
	// Landed is sent after a piece merges into the pile. Rows holds the rows it cleared.
	Landed EventKind = iota
	// SpeedUp is sent when the tick interval shortens. Interval holds the new value.
	SpeedUp
	// Ended is sent once when the session reaches GameOver. Final holds the reported score.
	Ended
)

func (k EventKind) String() string {
	switch k {
	case Landed:
		return "landed"
	case SpeedUp:
		return "speed-up"
	case Ended:
		return "ended"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

type Event struct {
	Kind       EventKind
	Score      int
	Rows       int
	TotalClear bool
	Interval   time.Duration
	Final      int
}
