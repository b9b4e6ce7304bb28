package ui

import (
	"clock/render"

	"github.com/gdamore/tcell/v2"
)

// Surface is the terminal the lanes share. tcell.Screen satisfies it.
// Lanes write disjoint regions; SetContent and Show are called from several
// goroutines and rely on tcell's own locking.
type Surface interface {
	render.Canvas
	Show()
	Clear()
	Sync()
	Colors() int
	PollEvent() tcell.Event
	PostEvent(ev tcell.Event) error
}
