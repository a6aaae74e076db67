// Package term draws engine snapshots on a tcell screen and decodes terminal keys into commands.
package term

import (
	"fmt"

	"github.com/deitrix/tetra/cell"
	"github.com/deitrix/tetra/game"
	"github.com/gdamore/tcell/v2"
)

const (
	// cellCols is the number of terminal columns one board cell takes
	cellCols = 2
	// originX and originY are the screen position of the top-left board cell, inside the frame
	originX = 1
	originY = 1
	// hudX is the first column of the score panel
	hudX = originX + cell.Width*cellCols + 3
)

var (
	frameStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	textStyle  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	alertStyle = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

func tintStyle(t cell.Tint) tcell.Style {
	c := t.NRGBA()
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
}

// BoardPos maps a board cell to the screen column and row of its left half.
func BoardPos(x, y int) (sx, sy int) {
	return originX + x*cellCols, originY + y
}

// Draw renders snap: the frame, the pile, the ghost, the falling piece and the score panel. notes
// are printed under the panel, one per line.
func Draw(s tcell.Screen, snap game.Snapshot, notes ...string) {
	s.Clear()
	drawFrame(s)

	for _, c := range snap.Ghost {
		drawCell(s, c.X, c.Y, ':', tintStyle(c.Tint).Dim(true))
	}
	for _, c := range snap.Grid.Cells() {
		drawCell(s, c.X, c.Y, '█', tintStyle(c.Tint))
	}
	if !snap.GameOver {
		for _, c := range snap.Piece {
			drawCell(s, c.X, c.Y, '█', tintStyle(c.Tint))
		}
	}

	drawText(s, hudX, originY, textStyle, "Score")
	drawText(s, hudX, originY+1, textStyle, fmt.Sprintf("%d", snap.Score))
	drawText(s, hudX, originY+3, textStyle, "Rows")
	drawText(s, hudX, originY+4, textStyle, fmt.Sprintf("%d", snap.Rows))
	drawText(s, hudX, originY+6, textStyle, "Speed")
	drawText(s, hudX, originY+7, textStyle, snap.Interval.String())

	switch snap.State {
	case game.Paused:
		drawText(s, hudX, originY+9, alertStyle, "PAUSED")
	case game.GameOver:
		drawText(s, hudX, originY+9, alertStyle, "GAME OVER")
		if snap.Final > 0 {
			drawText(s, hudX, originY+10, textStyle, fmt.Sprintf("High score %d!", snap.Final))
		}
		drawText(s, hudX, originY+11, textStyle, "r: new game")
	}
	for i, note := range notes {
		drawText(s, hudX, originY+13+i, textStyle, note)
	}
	s.Show()
}

func drawFrame(s tcell.Screen) {
	left, top := originX-1, originY-1
	right, bottom := originX+cell.Width*cellCols, originY+cell.Height
	for y := top; y <= bottom; y++ {
		s.SetContent(left, y, '│', nil, frameStyle)
		s.SetContent(right, y, '│', nil, frameStyle)
	}
	for x := left; x <= right; x++ {
		s.SetContent(x, bottom, '─', nil, frameStyle)
	}
	s.SetContent(left, bottom, '└', nil, frameStyle)
	s.SetContent(right, bottom, '┘', nil, frameStyle)
}

func drawCell(s tcell.Screen, x, y int, r rune, style tcell.Style) {
	if !cell.InBounds(x, y) {
		return
	}
	sx, sy := BoardPos(x, y)
	for i := range cellCols {
		s.SetContent(sx+i, sy, r, nil, style)
	}
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		s.SetContent(x+i, y, r, nil, style)
	}
}

// Action is what a key asks the front end to do.
type Action int

const (
	None Action = iota
	// Play sends the accompanying command to the engine
	Play
	Restart
	Quit
)

// Decode maps a key to an action. The pause key toggles, so it depends on the session state.
func Decode(ev *tcell.EventKey, state game.State) (Action, game.Command) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return Quit, 0
	case tcell.KeyLeft:
		return Play, game.MoveLeft
	case tcell.KeyRight:
		return Play, game.MoveRight
	case tcell.KeyDown:
		return Play, game.SoftDrop
	case tcell.KeyUp:
		return Play, game.RotateCW
	case tcell.KeyEnter:
		return Play, game.HardDrop
	case tcell.KeyRune:
	default:
		return None, 0
	}
	switch ev.Rune() {
	case 'q':
		return Quit, 0
	case 'r':
		return Restart, 0
	case 'h':
		return Play, game.MoveLeft
	case 'l':
		return Play, game.MoveRight
	case 'j':
		return Play, game.SoftDrop
	case ' ':
		return Play, game.HardDrop
	case 'k', 'x':
		return Play, game.RotateCW
	case 'z':
		return Play, game.RotateCCW
	case 'p':
		if state == game.Paused {
			return Play, game.Unpause
		}
		return Play, game.Pause
	}
	return None, 0
}
