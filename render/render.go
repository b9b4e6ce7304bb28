// Package render draws multi-line glyphs onto a character canvas.
//
// Writes that land outside the canvas are dropped. The dropped count is
// returned as an *OutOfBoundsError so call sites that accept clipping on a
// small terminal discard it explicitly.
package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Canvas is the subset of tcell.Screen the renderer needs.
type Canvas interface {
	Size() (width, height int)
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

// OutOfBoundsError reports how many lines (or line tails) were clipped.
type OutOfBoundsError struct {
	Y, X    int
	Dropped int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("render: %d line(s) at y=%d x=%d fell outside the canvas", e.Dropped, e.Y, e.X)
}

// Draw writes lines[i] at row y+i, column x, for i in [0, height). A line that
// is missing, starts off-canvas or runs past the right edge counts as dropped.
func Draw(c Canvas, height, y, x int, lines []string, style tcell.Style) error {
	if c == nil {
		return nil
	}
	width, rows := c.Size()
	dropped := 0
	for i := 0; i < height; i++ {
		row := y + i
		if i >= len(lines) || row < 0 || row >= rows || x < 0 || x >= width {
			dropped++
			continue
		}
		if !drawLine(c, width, row, x, lines[i], style) {
			dropped++
		}
	}
	if dropped > 0 {
		return &OutOfBoundsError{Y: y, X: x, Dropped: dropped}
	}
	return nil
}

// Text draws a single line.
func Text(c Canvas, y, x int, text string, style tcell.Style) error {
	return Draw(c, 1, y, x, []string{text}, style)
}

// drawLine reports false when the line was clipped at the right edge.
func drawLine(c Canvas, width, row, x int, line string, style tcell.Style) bool {
	col := x
	for _, r := range line {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			w = 1
		}
		if col+w > width {
			return false
		}
		c.SetContent(col, row, r, nil, style)
		col += w
	}
	return true
}
