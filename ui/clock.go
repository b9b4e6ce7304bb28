package ui

import (
	"time"

	"clock/glyph"
	"clock/internal/ratelimit"
	"clock/palette"
	"clock/render"

	"github.com/sirupsen/logrus"
)

// ClockLane draws HH:MM:SS in large digits.
type ClockLane struct {
	surface Surface
	config  ConfigProvider
	digits  *glyph.Set
	palette *palette.Palette
	layout  Layout
	log     *logrus.Entry
	missing *ratelimit.Counter

	// lastRow is touched only from the lane goroutine.
	lastRow int
}

func NewClockLane(surface Surface, cfg ConfigProvider, digits *glyph.Set, pal *palette.Palette, layout Layout, log *logrus.Entry) *ClockLane {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &ClockLane{
		surface: surface,
		config:  cfg,
		digits:  digits,
		palette: pal,
		layout:  layout,
		log:     log,
		missing: ratelimit.NewCounter(time.Minute),
		lastRow: -1,
	}
}

func (c *ClockLane) Name() string { return "clock" }

// Draw renders the time at now. An invalid digits color is returned and stops
// the scheduler.
func (c *ClockLane) Draw(now time.Time) error {
	cfg := c.config.Current()
	style, err := c.palette.Paint(cfg.DigitsColor, false)
	if err != nil {
		return err
	}

	row := c.layout.DigitsRow(cfg.SystemInfo)
	if row != c.lastRow {
		// The digits moved; wipe their old position.
		if c.lastRow >= 0 {
			c.surface.Clear()
		}
		c.lastRow = row
	}

	height := c.digits.Height()
	text := now.Format("150405")
	for i, ch := range text {
		_ = render.Draw(c.surface, height, row, c.layout.Digits[i], c.lookup(string(ch)), style)
	}
	sep := c.lookup(glyph.SeparatorKey)
	for _, x := range c.layout.Separators {
		_ = render.Draw(c.surface, height, row, x, sep, style)
	}
	return nil
}

func (c *ClockLane) lookup(key string) glyph.Glyph {
	g, err := c.digits.Lookup(key)
	if err != nil {
		c.missing.Warn(c.log, err, "digit glyph missing, drawing placeholder")
		return glyph.Fallback
	}
	return g
}
