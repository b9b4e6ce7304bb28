package render

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"
)

type cellWrite struct {
	x, y int
	r    rune
}

// recordingCanvas records every SetContent call.
type recordingCanvas struct {
	width, height int
	writes        []cellWrite
}

func (c *recordingCanvas) Size() (int, int) { return c.width, c.height }

func (c *recordingCanvas) SetContent(x, y int, primary rune, _ []rune, _ tcell.Style) {
	c.writes = append(c.writes, cellWrite{x: x, y: y, r: primary})
}

func TestDrawWritesLinesAtAnchor(t *testing.T) {
	c := &recordingCanvas{width: 20, height: 10}
	if err := Draw(c, 2, 3, 4, []string{"ab", "cd"}, tcell.StyleDefault); err != nil {
		t.Fatalf("Draw() error: %v", err)
	}
	want := []cellWrite{{4, 3, 'a'}, {5, 3, 'b'}, {4, 4, 'c'}, {5, 4, 'd'}}
	if len(c.writes) != len(want) {
		t.Fatalf("expected %d writes, got %v", len(want), c.writes)
	}
	for i := range want {
		if c.writes[i] != want[i] {
			t.Fatalf("write %d: got %+v want %+v", i, c.writes[i], want[i])
		}
	}
}

func TestDrawBeyondCanvasIsSilent(t *testing.T) {
	c := &recordingCanvas{width: 10, height: 5}
	lines := []string{"xxx", "yyy"}

	for _, pos := range [][2]int{{5, 0}, {100, 0}, {0, 10}, {0, 100}, {-3, 0}, {0, -1}} {
		err := Draw(c, len(lines), pos[0], pos[1], lines, tcell.StyleDefault)
		var oob *OutOfBoundsError
		if !errors.As(err, &oob) {
			t.Fatalf("Draw(y=%d,x=%d): expected OutOfBoundsError, got %v", pos[0], pos[1], err)
		}
		if oob.Dropped != len(lines) {
			t.Fatalf("Draw(y=%d,x=%d): expected %d dropped lines, got %d", pos[0], pos[1], len(lines), oob.Dropped)
		}
	}
	if len(c.writes) != 0 {
		t.Fatalf("expected no visible output, got %v", c.writes)
	}
}

func TestDrawPartialOverflow(t *testing.T) {
	c := &recordingCanvas{width: 4, height: 2}
	err := Draw(c, 3, 1, 0, []string{"ab", "cdefg", "hi"}, tcell.StyleDefault)
	var oob *OutOfBoundsError
	if !errors.As(err, &oob) {
		t.Fatalf("expected OutOfBoundsError, got %v", err)
	}
	// Row 1 fits, row 2 is below the canvas; nothing of "cdefg" exists on row 2.
	if oob.Dropped != 2 {
		t.Fatalf("expected 2 dropped lines, got %d", oob.Dropped)
	}
	if len(c.writes) != 2 {
		t.Fatalf("expected only the first line to be written, got %v", c.writes)
	}
}

func TestDrawClipsAtRightEdge(t *testing.T) {
	c := &recordingCanvas{width: 3, height: 1}
	err := Text(c, 0, 1, "abcd", tcell.StyleDefault)
	if err == nil {
		t.Fatalf("expected clipped line to be reported")
	}
	if len(c.writes) != 2 {
		t.Fatalf("expected 2 cells before the edge, got %v", c.writes)
	}
}

func TestDrawMissingLinesAreDropped(t *testing.T) {
	c := &recordingCanvas{width: 10, height: 10}
	err := Draw(c, 3, 0, 0, []string{"a"}, tcell.StyleDefault)
	var oob *OutOfBoundsError
	if !errors.As(err, &oob) || oob.Dropped != 2 {
		t.Fatalf("expected 2 dropped lines for a short glyph, got %v", err)
	}
}

func TestDrawOnSimulationScreen(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(20, 5)

	style := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	_ = Draw(screen, 2, 1, 2, []string{"██", "─x"}, style)
	screen.Show()

	cells, width, _ := screen.GetContents()
	cell := cells[1*width+2]
	if len(cell.Runes) == 0 || cell.Runes[0] != '█' {
		t.Fatalf("expected block glyph at (2,1), got %v", cell.Runes)
	}
	if cell.Style != style {
		t.Fatalf("expected style to be applied")
	}
	cell = cells[2*width+3]
	if len(cell.Runes) == 0 || cell.Runes[0] != 'x' {
		t.Fatalf("expected 'x' at (3,2), got %v", cell.Runes)
	}
}

func BenchmarkDrawDigit(b *testing.B) {
	c := &recordingCanvas{width: 120, height: 40}
	lines := make([]string, 9)
	for i := range lines {
		lines[i] = "██████████████"
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.writes = c.writes[:0]
		_ = Draw(c, len(lines), 14, 0, lines, tcell.StyleDefault)
	}
}
