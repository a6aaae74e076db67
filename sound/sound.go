// Package sound plays short tones for engine events.
package sound

import (
	"fmt"
	"time"

	"github.com/deitrix/tetra/game"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

type tone struct {
	freq     float64
	duration time.Duration
}

// cue returns the notes played for ev, lowest first. Events without a sound return nil.
func cue(ev game.Event) []tone {
	switch ev.Kind {
	case game.Landed:
		if ev.Rows == 0 {
			return []tone{{220, 30 * time.Millisecond}}
		}
		notes := make([]tone, 0, ev.Rows+1)
		for i := range ev.Rows {
			notes = append(notes, tone{440 * float64(i+2) / 2, 60 * time.Millisecond})
		}
		if ev.TotalClear {
			notes = append(notes, tone{1320, 200 * time.Millisecond})
		}
		return notes
	case game.SpeedUp:
		return []tone{{660, 40 * time.Millisecond}, {880, 40 * time.Millisecond}}
	case game.Ended:
		return []tone{{330, 150 * time.Millisecond}, {220, 150 * time.Millisecond}, {110, 300 * time.Millisecond}}
	}
	return nil
}

func streamer(notes []tone) (beep.Streamer, error) {
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		sine, err := generators.SineTone(sampleRate, n.freq)
		if err != nil {
			return nil, fmt.Errorf("tone %.0fHz: %w", n.freq, err)
		}
		parts = append(parts, beep.Take(sampleRate.N(n.duration), sine))
	}
	return beep.Seq(parts...), nil
}

// Player plays event cues on the default audio device.
type Player struct {
	muted bool
}

// NewPlayer opens the speaker. A muted player never touches the audio device.
func NewPlayer(muted bool) (*Player, error) {
	if muted {
		return &Player{muted: true}, nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("initializing speaker: %w", err)
	}
	return &Player{}, nil
}

// Play queues the cue for ev. It returns immediately.
func (p *Player) Play(ev game.Event) error {
	notes := cue(ev)
	if p.muted || len(notes) == 0 {
		return nil
	}
	s, err := streamer(notes)
	if err != nil {
		return err
	}
	speaker.Play(s)
	return nil
}

func (p *Player) Close() {
	if !p.muted {
		speaker.Close()
	}
}
