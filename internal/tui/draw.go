package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/robalobadob/develordle/internal/game"
)

var (
	rgbCorrect = tcell.NewRGBColor(83, 141, 78)
	rgbPresent = tcell.NewRGBColor(181, 159, 59)
	rgbAbsent  = tcell.NewRGBColor(58, 58, 60)
	rgbKey     = tcell.NewRGBColor(129, 131, 132)
	rgbText    = tcell.NewRGBColor(255, 255, 255)
)

// keyboardRows is the on-screen layout; ENTER and BACK are special keys.
var keyboardRows = [][]string{
	{"Q", "W", "E", "R", "T", "Y", "U", "I", "O", "P"},
	{"A", "S", "D", "F", "G", "H", "J", "K", "L"},
	{"ENTER", "Z", "X", "C", "V", "B", "N", "M", "BACK"},
}

const (
	tileWidth = 3 // " X "
	gap       = 1
	boardTop  = 2
)

type keyBox struct {
	x, y, w int
	label   string
}

func (a *App) hitTest(x, y int) (string, bool) {
	for _, b := range a.hits {
		if y == b.y && x >= b.x && x < b.x+b.w {
			return b.label, true
		}
	}
	return "", false
}

func classStyle(c game.Classification) tcell.Style {
	bg := rgbAbsent
	switch c {
	case game.Correct:
		bg = rgbCorrect
	case game.Present:
		bg = rgbPresent
	}
	return tcell.StyleDefault.Background(bg).Foreground(rgbText).Bold(true)
}

func keyStyle(k game.KeyStatus) tcell.Style {
	switch k {
	case game.KeyCorrect:
		return classStyle(game.Correct)
	case game.KeyPresent:
		return classStyle(game.Present)
	case game.KeyAbsent:
		return classStyle(game.Absent)
	}
	return tcell.StyleDefault.Background(rgbKey).Foreground(rgbText)
}

// Draw renders the whole UI.
func (a *App) Draw() {
	a.screen.Clear()
	w, _ := a.screen.Size()
	snap := a.eng.Snapshot()

	a.text(center(w, "DEVELORDLE"), 0, "DEVELORDLE", tcell.StyleDefault.Bold(true))

	boardWidth := game.WordLength*(tileWidth+gap) - gap
	x0 := (w - boardWidth) / 2
	for r := 0; r < game.MaxAttempts; r++ {
		y := boardTop + r
		row := snap.Rows[r]
		for c := 0; c < game.WordLength; c++ {
			ch := ' '
			if c < len(row) {
				ch = rune(row[c])
			}
			st := tcell.StyleDefault.Reverse(ch != ' ')
			if t := a.tiles[r][c]; t.shown {
				st = classStyle(t.class)
			}
			x := x0 + c*(tileWidth+gap)
			a.text(x, y, " "+string(ch)+" ", st)
		}
	}

	msgY := boardTop + game.MaxAttempts + 1
	if a.message != "" {
		a.text(center(w, a.message), msgY, a.message, tcell.StyleDefault.Bold(true))
	}

	a.hits = a.hits[:0]
	for i, row := range keyboardRows {
		y := msgY + 2 + i
		width := -gap
		for _, label := range row {
			width += len(label) + 2 + gap
		}
		x := (w - width) / 2
		for _, label := range row {
			st := keyStyle(game.KeyUnknown)
			if len(label) == 1 {
				st = keyStyle(a.keys.Status(label[0]))
			}
			cell := " " + label + " "
			a.text(x, y, cell, st)
			a.hits = append(a.hits, keyBox{x: x, y: y, w: len(cell), label: label})
			x += len(cell) + gap
		}
	}

	footer := "Ctrl+N new game   Esc quit"
	a.text(center(w, footer), msgY+2+len(keyboardRows)+1, footer, tcell.StyleDefault.Dim(true))
	a.screen.Show()
}

func (a *App) text(x, y int, s string, st tcell.Style) {
	for _, r := range s {
		a.screen.SetContent(x, y, r, nil, st)
		x += runewidth.RuneWidth(r)
	}
}

func center(width int, s string) int {
	x := (width - runewidth.StringWidth(s)) / 2
	if x < 0 {
		return 0
	}
	return x
}
