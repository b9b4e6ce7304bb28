package ui

// Point is a row/column cell coordinate.
type Point struct {
	Y, X int
}

// Layout fixes where every panel is drawn. It is set once at construction.
type Layout struct {
	Logo        Point
	Header      Point
	Info        Point
	Temperature Point
	Version     Point
	Copyright   Point
	Indicator   Point

	// DigitsY is the digit row with the info panel shown; DigitsShift is how
	// far the digits move up without it.
	DigitsY     int
	DigitsShift int

	// Digits holds the columns of H H M M S S; Separators the two colons.
	Digits     [6]int
	Separators [2]int

	// SegmentWidth is the width of one severity indicator segment.
	SegmentWidth int

	// LogoPlaceholder is the placeholder offset from Logo when no logo
	// matches.
	LogoPlaceholder Point
}

// DefaultLayout is sized for a terminal of at least 106x23.
func DefaultLayout() Layout {
	return Layout{
		Logo:            Point{0, 0},
		Header:          Point{1, 78},
		Info:            Point{1, 32},
		Temperature:     Point{2, 78},
		Version:         Point{10, 32},
		Copyright:       Point{11, 32},
		Indicator:       Point{11, 78},
		DigitsY:         14,
		DigitsShift:     12,
		Digits:          [6]int{0, 16, 38, 54, 76, 92},
		Separators:      [2]int{33, 71},
		SegmentWidth:    5,
		LogoPlaceholder: Point{6, 11},
	}
}

// DigitsRow returns the digit row for the current info panel state.
func (l Layout) DigitsRow(systemInfo bool) int {
	if systemInfo {
		return l.DigitsY
	}
	return l.DigitsY - l.DigitsShift
}
