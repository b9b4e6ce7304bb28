// Package ratelimit throttles log lines that would otherwise repeat every
// frame.
package ratelimit

import (
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// Counter tracks how often an event happened and when it was last logged.
// It is safe for concurrent use.
type Counter struct {
	interval time.Duration
	lastLog  atomic.Int64
	total    atomic.Uint64
}

// NewCounter allows a log at most once per interval. A zero or negative
// interval disables throttling.
func NewCounter(interval time.Duration) *Counter {
	return &Counter{interval: interval}
}

// Inc counts one occurrence and reports whether it may be logged.
func (c *Counter) Inc() (uint64, bool) {
	if c == nil {
		return 0, false
	}
	total := c.total.Add(1)
	if c.interval <= 0 {
		return total, true
	}
	now := time.Now().UnixNano()
	last := c.lastLog.Load()
	if last != 0 && now-last < c.interval.Nanoseconds() {
		return total, false
	}
	if c.lastLog.CompareAndSwap(last, now) {
		return total, true
	}
	return total, false
}

// Total is the number of occurrences counted so far.
func (c *Counter) Total() uint64 {
	if c == nil {
		return 0
	}
	return c.total.Load()
}

// Warn counts one occurrence and logs it with the running total when allowed.
func (c *Counter) Warn(log *logrus.Entry, err error, msg string) {
	total, ok := c.Inc()
	if !ok || log == nil {
		return
	}
	entry := log.WithField("occurrences", total)
	if err != nil {
		entry = entry.WithError(err)
	}
	entry.Warn(msg)
}
