package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/debug"
	"strings"

	"github.com/deitrix/tetra/clock"
	"github.com/deitrix/tetra/game"
	"github.com/deitrix/tetra/highscore"
	"github.com/deitrix/tetra/sound"
	"github.com/deitrix/tetra/term"
	"github.com/gdamore/tcell/v2"
)

const logFileName = "tetra-term.log"

var (
	seedFlag  = flag.Uint64("seed", 0, "Seed for piece generation (0 = random)")
	debugFlag = flag.Bool("debug", false, "Write a debug log to "+logFileName)
	muteFlag  = flag.Bool("mute", false, "Disable sound")
	nameFlag  = flag.String("name", "player", "Name recorded in the high-score table")
)

// setupLogging sends the standard logger to logFileName when debug is set and discards it
// otherwise; the screen owns stdout.
func setupLogging(debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}
	f, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(f)
	log.SetFlags(log.Ltime | log.Lmicroseconds)
	return f
}

type app struct {
	screen tcell.Screen
	engine *game.Engine
	ticks  *clock.Wall
	player *sound.Player
	scores *highscore.Table
	name   string
}

func newApp(screen tcell.Screen, player *sound.Player, name string, seed uint64) *app {
	a := &app{
		screen: screen,
		ticks:  clock.NewWall(),
		player: player,
		scores: highscore.New(),
		name:   name,
	}
	cfg := game.DefaultConfig()
	cfg.Rand = game.NewRand(seed)
	cfg.Ticker = a.ticks
	cfg.HighScores = a.scores
	cfg.Logger = log.Default()
	cfg.OnEvent = a.onEvent
	a.engine = game.New(cfg)
	return a
}

func (a *app) onEvent(ev game.Event) {
	if err := a.player.Play(ev); err != nil {
		log.Printf("sound: %v", err)
	}
	if ev.Kind == game.Ended && ev.Final > 0 {
		if err := a.scores.Submit(a.name, ev.Final); err != nil {
			log.Printf("high score: %v", err)
		}
	}
}

func (a *app) draw() {
	var notes []string
	if a.engine.State() == game.GameOver {
		notes = strings.Split(strings.TrimSuffix(a.scores.String(), "\n"), "\n")
	}
	term.Draw(a.screen, a.engine.Snapshot(), notes...)
}

// handle applies one terminal event and reports whether the loop should keep going.
func (a *app) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		action, cmd := term.Decode(ev, a.engine.State())
		switch action {
		case term.Quit:
			return false
		case term.Restart:
			a.engine.Reset()
		case term.Play:
			a.engine.Handle(cmd)
		}
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

func (a *app) run() {
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	for {
		a.draw()
		select {
		case ev := <-events:
			if !a.handle(ev) {
				return
			}
		case <-a.ticks.C():
			a.engine.Tick()
		}
	}
}

func main() {
	flag.Parse()
	if f := setupLogging(*debugFlag); f != nil {
		defer f.Close()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "tetra-term crashed: %v\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()
	defer screen.Fini()

	player, err := sound.NewPlayer(*muteFlag)
	if err != nil {
		log.Printf("audio initialization failed: %v (continuing without sound)", err)
		player, _ = sound.NewPlayer(true)
	}
	defer player.Close()

	newApp(screen, player, *nameFlag, *seedFlag).run()
}
