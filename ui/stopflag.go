package ui

import "sync/atomic"

// StopFlag is the shared running state of all lanes. It only moves from
// running to stopped.
type StopFlag struct {
	stopped atomic.Bool
}

func NewStopFlag() *StopFlag {
	return &StopFlag{}
}

func (f *StopFlag) Running() bool {
	return !f.stopped.Load()
}

// Stop reports whether this call performed the transition.
func (f *StopFlag) Stop() bool {
	return f.stopped.CompareAndSwap(false, true)
}
