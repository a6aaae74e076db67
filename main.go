package main

import (
	"flag"
	"fmt"
	"image/color"
	"io"
	"log"
	"strings"
	"time"

	"github.com/deitrix/tetra/cell"
	"github.com/deitrix/tetra/clock"
	"github.com/deitrix/tetra/game"
	"github.com/deitrix/tetra/highscore"
	"github.com/deitrix/tetra/input"
	"github.com/deitrix/tetra/sprite"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

const (
	// cellSize is the size of each cell in pixels
	cellSize = 32
	// panelWidth is the width of the score panels either side of the board, in cells
	panelWidth = 6
	// wallThickness is the thickness of the walls and floor drawn around the board, in cells
	wallThickness = 1
	// repeatDelay is the number of ticks a key must be held before it starts repeating
	repeatDelay = 10
	// repeatRate is the number of ticks between repeats once a held key repeats
	repeatRate = 3
	// tps is the number of Update calls per second
	tps = 60
)

const (
	boardX       = (panelWidth + wallThickness) * cellSize
	screenWidth  = (2*panelWidth + 2*wallThickness + cell.Width) * cellSize
	screenHeight = (cell.Height + wallThickness) * cellSize
)

var (
	seedFlag  = flag.Uint64("seed", 0, "Seed for piece generation (0 = random)")
	debugFlag = flag.Bool("debug", false, "Log engine diagnostics to stderr")
	nameFlag  = flag.String("name", "player", "Name recorded in the high-score table")
	scaleFlag = flag.Float64("scale", 1, "Window scale factor")
)

// touchStart is where a touch (or mouse press) began
type touchStart struct {
	X, Y float64
}

type Game struct {
	// Engine runs the session
	Engine *game.Engine
	// Ticks turns frames into engine ticks at the interval the engine asks for
	Ticks *clock.Frames
	// Scores is the high-score table shown at game over
	Scores *highscore.Table
	// Name is recorded with qualifying scores
	Name string
	// Touches holds the start of every touch still in progress
	Touches map[ebiten.TouchID]touchStart
	// MouseStart is the start of a mouse drag, nil when the button is up
	MouseStart *touchStart
	// ShowDebug is a flag that indicates whether debug information should be shown
	ShowDebug bool

	touchIDs []ebiten.TouchID
}

func NewGame(seed uint64, name string, logger *log.Logger) *Game {
	g := &Game{
		Ticks:   &clock.Frames{},
		Scores:  highscore.New(),
		Name:    name,
		Touches: make(map[ebiten.TouchID]touchStart),
	}
	cfg := game.DefaultConfig()
	cfg.Rand = game.NewRand(seed)
	cfg.Ticker = g.Ticks
	cfg.HighScores = g.Scores
	cfg.Logger = logger
	cfg.OnEvent = g.onEvent
	g.Engine = game.New(cfg)
	return g
}

func (g *Game) onEvent(ev game.Event) {
	if ev.Kind != game.Ended || ev.Final == 0 {
		return
	}
	if err := g.Scores.Submit(g.Name, ev.Final); err != nil {
		log.Printf("submitting high score: %v", err)
	}
}

// repeats reports whether a key held for d ticks should fire this tick.
func repeats(d int) bool {
	return d == 1 || (d > repeatDelay && (d-repeatDelay)%repeatRate == 0)
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Engine.Reset()
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyI) {
		g.ShowDebug = !g.ShowDebug
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		if g.Engine.State() == game.Paused {
			g.Engine.Handle(game.Unpause)
		} else {
			g.Engine.Handle(game.Pause)
		}
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.Engine.Handle(game.HardDrop)
		return nil
	}

	if repeats(inpututil.KeyPressDuration(ebiten.KeyLeft)) {
		g.Engine.Handle(game.MoveLeft)
	}
	if repeats(inpututil.KeyPressDuration(ebiten.KeyRight)) {
		g.Engine.Handle(game.MoveRight)
	}
	if repeats(inpututil.KeyPressDuration(ebiten.KeyDown)) {
		g.Engine.Handle(game.SoftDrop)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) || inpututil.IsKeyJustPressed(ebiten.KeyX) {
		g.Engine.Handle(game.RotateCW)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyZ) {
		g.Engine.Handle(game.RotateCCW)
	}

	g.updateTouches()

	for range g.Ticks.Advance(time.Second / tps) {
		g.Engine.Tick()
	}
	return nil
}

// updateTouches turns finished touches and mouse drags into swipes.
func (g *Game) updateTouches() {
	g.touchIDs = inpututil.AppendJustPressedTouchIDs(g.touchIDs[:0])
	for _, id := range g.touchIDs {
		x, y := ebiten.TouchPosition(id)
		g.Touches[id] = touchStart{float64(x), float64(y)}
	}
	g.touchIDs = inpututil.AppendJustReleasedTouchIDs(g.touchIDs[:0])
	for _, id := range g.touchIDs {
		start, ok := g.Touches[id]
		if !ok {
			continue
		}
		delete(g.Touches, id)
		x, y := inpututil.TouchPositionInPreviousTick(id)
		g.swipe(start, float64(x), float64(y))
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.MouseStart = &touchStart{float64(x), float64(y)}
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) && g.MouseStart != nil {
		x, y := ebiten.CursorPosition()
		g.swipe(*g.MouseStart, float64(x), float64(y))
		g.MouseStart = nil
	}
}

func (g *Game) swipe(start touchStart, x, y float64) {
	s := input.Swipe{DownX: start.X, DownY: start.Y, UpX: x, UpY: y}
	if cmd, ok := s.Command(midline); ok {
		g.Engine.Handle(cmd)
	}
}

// midline is the screen column that splits taps into clockwise and counter-clockwise turns.
const midline = float64(screenWidth) / 2

func (g *Game) Draw(screen *ebiten.Image) {
	snap := g.Engine.Snapshot()
	g.drawWalls(screen)
	for _, c := range snap.Grid.Cells() {
		drawBoardCell(screen, sprite.Cell, c, 255)
	}
	if !snap.GameOver {
		for _, c := range snap.Ghost {
			drawBoardCell(screen, sprite.Ghost, c, 160)
		}
		for _, c := range snap.Piece {
			drawBoardCell(screen, sprite.Cell, c, 255)
		}
	}
	g.drawScore(screen, snap)
	g.drawState(screen, snap)
	g.drawDebug(screen, snap)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return screenWidth, screenHeight
}

func (g *Game) drawWalls(screen *ebiten.Image) {
	wall := cell.Wall
	for y := 0; y <= cell.Height; y++ {
		drawCell(screen, sprite.Cell, boardX-cellSize, y*cellSize, wall, 255)
		drawCell(screen, sprite.Cell, boardX+cell.Width*cellSize, y*cellSize, wall, 255)
	}
	for x := 0; x < cell.Width; x++ {
		drawCell(screen, sprite.Cell, boardX+x*cellSize, cell.Height*cellSize, wall, 255)
	}
}

func (g *Game) drawScore(screen *ebiten.Image, snap game.Snapshot) {
	drawText(screen, sprite.Regular, "Score", 24, 12, screenHeight-168, color.White)
	drawText(screen, sprite.Regular, fmt.Sprintf("%d", snap.Score), 24, 96, screenHeight-168, color.White)
	drawText(screen, sprite.Regular, "Rows", 24, 12, screenHeight-120, color.White)
	drawText(screen, sprite.Regular, fmt.Sprintf("%d", snap.Rows), 24, 96, screenHeight-120, color.White)
	drawText(screen, sprite.Regular, "Speed", 24, 12, screenHeight-72, color.White)
	drawText(screen, sprite.Regular, snap.Interval.String(), 24, 96, screenHeight-72, color.White)
}

func (g *Game) drawState(screen *ebiten.Image, snap game.Snapshot) {
	x := boardX + cell.Width*cellSize + 2*cellSize
	switch snap.State {
	case game.Paused:
		drawText(screen, sprite.Regular, "Paused", 32, x, 2*cellSize, color.White)
	case game.GameOver:
		drawText(screen, sprite.Regular, "Game Over", 32, x, 2*cellSize, color.White)
		if snap.Final > 0 {
			drawText(screen, sprite.Regular, fmt.Sprintf("High score %d", snap.Final), 20, x, 3*cellSize, color.White)
		}
		drawText(screen, sprite.Monospace, g.Scores.String(), 16, x, 5*cellSize, color.White)
	}
}

func (g *Game) drawDebug(screen *ebiten.Image, snap game.Snapshot) {
	if !g.ShowDebug {
		return
	}
	drawText(screen, sprite.Monospace, strings.Join([]string{
		fmt.Sprintf("FPS: %0.2f", ebiten.ActualFPS()),
		fmt.Sprintf("TPS: %0.2f", ebiten.ActualTPS()),
		fmt.Sprintf("State: %v", snap.State),
		fmt.Sprintf("Piece: %v", snap.Shape),
		fmt.Sprintf("Interval: %v", snap.Interval),
		fmt.Sprintf("Drop Distance: %d", g.Engine.DropDistance()),
		fmt.Sprintf("Touches: %d", len(g.Touches)),
	}, "\n"), 14, 12, 24, color.White)
}

var fontFaceCache = make(map[*opentype.Font]map[float64]font.Face)

func drawText(img *ebiten.Image, f *opentype.Font, t string, size float64, x, y int, c color.Color) {
	if _, ok := fontFaceCache[f]; !ok {
		fontFaceCache[f] = make(map[float64]font.Face)
	}
	if _, ok := fontFaceCache[f][size]; !ok {
		var err error
		fontFaceCache[f][size], err = opentype.NewFace(f, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingNone,
		})
		if err != nil {
			log.Fatalf("failed to create face: %v", err)
		}
	}
	text.Draw(img, t, fontFaceCache[f][size], x, y, c)
}

// boardPixel maps a board cell to the top-left pixel it is drawn at.
func boardPixel(x, y int) (px, py int) {
	return boardX + x*cellSize, y * cellSize
}

func drawBoardCell(screen, img *ebiten.Image, c cell.Cell, opacity uint8) {
	x, y := boardPixel(c.X, c.Y)
	drawCell(screen, img, x, y, c.Tint, opacity)
}

func drawCell(screen *ebiten.Image, img *ebiten.Image, x, y int, tint cell.Tint, opacity uint8) {
	var op ebiten.DrawImageOptions
	op.ColorScale.ScaleWithColor(tint.NRGBA())
	op.ColorScale.ScaleAlpha(float32(opacity) / 255)
	op.GeoM.Scale(float64(cellSize)/float64(img.Bounds().Dx()), float64(cellSize)/float64(img.Bounds().Dy()))
	op.GeoM.Translate(float64(x), float64(y))
	screen.DrawImage(img, &op)
}

func main() {
	flag.Parse()
	log.SetFlags(0)
	logger := log.New(io.Discard, "", 0)
	if *debugFlag {
		logger = log.New(log.Writer(), "engine: ", log.Lmicroseconds)
	}
	if err := sprite.Load(); err != nil {
		log.Fatalf("failed to load sprites: %v", err)
	}

	ebiten.SetWindowTitle("Tetra")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(tps)
	ebiten.SetWindowSize(int(float64(screenWidth)*(*scaleFlag)), int(float64(screenHeight)*(*scaleFlag)))
	if err := ebiten.RunGame(NewGame(*seedFlag, *nameFlag, logger)); err != nil {
		log.Fatalf("failed to run game: %v", err)
	}
}
