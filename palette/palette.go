// Package palette maps the semantic color names used in the configuration to
// terminal styles through a fixed table of color pairs.
package palette

import (
	"fmt"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"
	"github.com/gdamore/tcell/v2"
	"github.com/juju/errors"
)

// Names lists the recognized colors in pair order: Names[i] is pair i+1.
var Names = []string{"MAGENTA", "BLUE", "CYAN", "GREEN", "YELLOW", "RED", "WHITE", "BLACK"}

// ANSI base color numbers, the same ones curses-style terminals expose.
var baseColors = map[string]int{
	"BLACK":   0,
	"RED":     1,
	"GREEN":   2,
	"YELLOW":  3,
	"BLUE":    4,
	"MAGENTA": 5,
	"CYAN":    6,
	"WHITE":   7,
}

// Palette resolves color names to pair indexes and pair indexes to styles.
// The pair table is rebuilt on every Paint from the terminal's current color
// capability, so a terminal that reports colors late is picked up.
type Palette struct {
	colors func() int

	mu    sync.Mutex
	pairs []tcell.Style
}

// New builds a Palette. colors reports the number of colors the terminal
// supports (tcell.Screen.Colors); nil means a color terminal.
func New(colors func() int) *Palette {
	if colors == nil {
		colors = func() int { return 256 }
	}
	return &Palette{
		colors: colors,
		pairs:  make([]tcell.Style, len(Names)+1),
	}
}

// Resolve returns the pair index (1-based) for name. An unknown name is a
// configuration defect and is reported as NotValid.
func Resolve(name string) (int, error) {
	key := strings.ToUpper(strings.TrimSpace(name))
	for i, candidate := range Names {
		if candidate == key {
			return i + 1, nil
		}
	}
	return 0, errors.NewNotValid(nil, unknownColorMessage(name))
}

func (p *Palette) Resolve(name string) (int, error) {
	return Resolve(name)
}

// Paint returns the style for name, optionally bold.
func (p *Palette) Paint(name string, bold bool) (tcell.Style, error) {
	idx, err := Resolve(name)
	if err != nil {
		return tcell.StyleDefault, err
	}
	style := p.Pair(idx)
	if bold {
		style = style.Bold(true)
	}
	return style, nil
}

// Pair returns the style of a pair index. Out-of-range indexes get the
// terminal default style.
func (p *Palette) Pair(index int) tcell.Style {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.establishLocked()
	if index <= 0 || index >= len(p.pairs) {
		return tcell.StyleDefault
	}
	return p.pairs[index]
}

func (p *Palette) establishLocked() {
	mono := p.colors() < 8
	for i, name := range Names {
		fg := tcell.ColorDefault
		if !mono {
			fg = tcell.PaletteColor(baseColor(name))
		}
		p.pairs[i+1] = tcell.StyleDefault.Foreground(fg).Background(tcell.ColorDefault)
	}
}

func baseColor(name string) int {
	if n, ok := baseColors[name]; ok {
		return n
	}
	return baseColors["WHITE"]
}

func unknownColorMessage(name string) string {
	best := ""
	bestDist := -1
	key := strings.ToUpper(strings.TrimSpace(name))
	for _, candidate := range Names {
		d := levenshtein.ComputeDistance(key, candidate)
		if bestDist < 0 || d < bestDist {
			best, bestDist = candidate, d
		}
	}
	msg := fmt.Sprintf("color %q not found (available: %s)", name, strings.Join(Names, ", "))
	if bestDist >= 0 && bestDist <= 2 {
		msg += fmt.Sprintf("; did you mean %s?", best)
	}
	return msg
}
