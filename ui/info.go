package ui

import (
	"strings"
	"time"

	"clock/glyph"
	"clock/internal/ratelimit"
	"clock/palette"
	"clock/render"
	"clock/sensors"
	"clock/sysinfo"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
)

const (
	headerTitle = "ЭЛЕКТРОНИКА 54"
	copyright   = "MIT License, (c) 2026 Joerdon Fryeman"
)

var (
	indicatorOn  = strings.Repeat("█", 5)
	indicatorOff = strings.Repeat(" ", 5)
)

// IdentitySource yields the host identity; sysinfo.Collector implements it.
type IdentitySource interface {
	Collect() sysinfo.Identity
}

// ReadingSource yields component temperatures; sensors.Collector implements
// it.
type ReadingSource interface {
	Collect() []sensors.Reading
}

// InfoLane draws the logo, the header, the system info and temperature panels
// and the severity indicator. It re-reads the configuration every frame.
type InfoLane struct {
	surface  Surface
	config   ConfigProvider
	logos    *glyph.Set
	palette  *palette.Palette
	identity IdentitySource
	sensors  ReadingSource
	layout   Layout
	version  string
	log      *logrus.Entry

	reloadFailed *ratelimit.Counter
}

// InfoLaneOptions carries the collaborators of an InfoLane.
type InfoLaneOptions struct {
	Logos    *glyph.Set
	Palette  *palette.Palette
	Identity IdentitySource
	Sensors  ReadingSource
	Layout   Layout
	Version  string
	Log      *logrus.Entry
}

func NewInfoLane(surface Surface, cfg ConfigProvider, opts InfoLaneOptions) *InfoLane {
	if opts.Log == nil {
		opts.Log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &InfoLane{
		surface:      surface,
		config:       cfg,
		logos:        opts.Logos,
		palette:      opts.Palette,
		identity:     opts.Identity,
		sensors:      opts.Sensors,
		layout:       opts.Layout,
		version:      opts.Version,
		log:          opts.Log,
		reloadFailed: ratelimit.NewCounter(time.Minute),
	}
}

func (l *InfoLane) Name() string { return "info" }

// Purpose: Draw one frame of the info panel.
// Key aspects: A failed reload keeps the previous configuration; an invalid
// color name is returned; off-canvas writes are discarded.
// Upstream: Scheduler.runLane.
// Downstream: config reload, collectors, render.Draw.
func (l *InfoLane) Draw(now time.Time) error {
	cfg, err := l.config.Reload()
	if err != nil {
		l.reloadFailed.Warn(l.log, err, "config reload failed, keeping previous configuration")
		cfg = l.config.Current()
	}

	logoStyle, err := l.palette.Paint(cfg.LogoColor, false)
	if err != nil {
		return err
	}
	infoStyle, err := l.palette.Paint(cfg.InfoColor, false)
	if err != nil {
		return err
	}
	headerStyle, err := l.palette.Paint(cfg.DigitsColor, false)
	if err != nil {
		return err
	}

	l.drawLogo(sysinfo.DetectOS(cfg.LogoName), logoStyle)

	lay := l.layout
	_ = render.Text(l.surface, lay.Header.Y, lay.Header.X, HeaderLine(now), headerStyle)
	_ = render.Text(l.surface, lay.Version.Y, lay.Version.X, VersionLine(l.version), infoStyle)
	_ = render.Text(l.surface, lay.Copyright.Y, lay.Copyright.X, copyright, infoStyle)

	if l.identity != nil {
		lines := sysinfo.Lines(sysinfo.Records(l.identity.Collect(), cfg.Language))
		_ = render.Draw(l.surface, len(lines), lay.Info.Y, lay.Info.X, lines, infoStyle)
	}

	var readings []sensors.Reading
	if l.sensors != nil {
		readings = l.sensors.Collect()
	}
	lines := sensors.Lines(sensors.Records(readings, cfg.Language))
	_ = render.Draw(l.surface, len(lines), lay.Temperature.Y, lay.Temperature.X, lines, infoStyle)

	l.drawIndicator(sensors.Severity(sensors.Average(readings)))
	return nil
}

func (l *InfoLane) drawLogo(name string, style tcell.Style) {
	lay := l.layout
	logo, err := l.logos.Lookup(name)
	if err != nil {
		_ = render.Text(l.surface, lay.Logo.Y+lay.LogoPlaceholder.Y, lay.Logo.X+lay.LogoPlaceholder.X, glyph.Placeholder, style)
		return
	}
	_ = render.Draw(l.surface, len(logo), lay.Logo.Y, lay.Logo.X, logo, style)
}

// drawIndicator lights the first severity segments; segment i uses pair i+1,
// so the bar runs from cool to hot colors.
func (l *InfoLane) drawIndicator(severity int) {
	lay := l.layout
	for i := 0; i < sensors.MaxSeverity; i++ {
		segment := indicatorOff
		if i < severity {
			segment = indicatorOn
		}
		_ = render.Text(l.surface, lay.Indicator.Y, lay.Indicator.X+i*lay.SegmentWidth, segment, l.palette.Pair(i+1))
	}
}

// HeaderLine is "DD.MM.YYYY | ЭЛЕКТРОНИКА 54".
func HeaderLine(now time.Time) string {
	return now.Format("02.01.2006") + " | " + headerTitle
}

// VersionLine is "Clock (version X)".
func VersionLine(version string) string {
	return "Clock (version " + version + ")"
}
