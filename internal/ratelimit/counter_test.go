package ratelimit

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestCounterThrottles(t *testing.T) {
	c := NewCounter(time.Hour)
	if _, ok := c.Inc(); !ok {
		t.Fatalf("expected first occurrence to be logged")
	}
	for i := 0; i < 10; i++ {
		if _, ok := c.Inc(); ok {
			t.Fatalf("expected occurrence %d to be throttled", i+2)
		}
	}
	if c.Total() != 11 {
		t.Fatalf("expected total 11, got %d", c.Total())
	}
}

func TestCounterWithoutInterval(t *testing.T) {
	c := NewCounter(0)
	for i := 0; i < 3; i++ {
		if _, ok := c.Inc(); !ok {
			t.Fatalf("expected every occurrence to be logged without an interval")
		}
	}
	var nilCounter *Counter
	if _, ok := nilCounter.Inc(); ok {
		t.Fatalf("nil counter must not allow logging")
	}
}

func TestCounterWarn(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	log := logrus.NewEntry(logger)

	c := NewCounter(time.Hour)
	c.Warn(log, errors.New("boom"), "reload failed")
	c.Warn(log, errors.New("boom"), "reload failed")

	out := buf.String()
	if strings.Count(out, "reload failed") != 1 {
		t.Fatalf("expected one warning line, got %q", out)
	}
	if !strings.Contains(out, "occurrences=1") || !strings.Contains(out, "error=boom") {
		t.Fatalf("expected total and error fields, got %q", out)
	}
}
