package ui

import (
	"strings"
	"testing"
	"time"

	"clock/config"
	"clock/glyph"
	"clock/palette"
	"clock/sensors"
	"clock/sysinfo"

	"github.com/juju/errors"
)

func defaultDigits(t *testing.T) *glyph.Set {
	t.Helper()
	set, err := glyph.Decode(glyph.DefaultDigits)
	if err != nil {
		t.Fatalf("decode default digits: %v", err)
	}
	return set
}

func defaultLogos(t *testing.T) *glyph.Set {
	t.Helper()
	set, err := glyph.Decode(glyph.DefaultLogos)
	if err != nil {
		t.Fatalf("decode default logos: %v", err)
	}
	return set
}

func glyphAt(surface *fakeSurface, y, x int, g glyph.Glyph) bool {
	for i, line := range g {
		if surface.text(y+i, x, len([]rune(line))) != line {
			return false
		}
	}
	return true
}

func TestClockLaneDrawsDigits(t *testing.T) {
	surface := newFakeSurface(120, 30)
	cfg := newStaticConfig(nil)
	digits := defaultDigits(t)
	lane := NewClockLane(surface, cfg, digits, palette.New(surface.Colors), DefaultLayout(), nil)

	now := time.Date(2026, 3, 14, 12, 34, 56, 0, time.Local)
	if err := lane.Draw(now); err != nil {
		t.Fatalf("Draw() error: %v", err)
	}

	layout := DefaultLayout()
	for i, ch := range "123456" {
		g, _ := digits.Lookup(string(ch))
		if !glyphAt(surface, layout.DigitsY, layout.Digits[i], g) {
			t.Fatalf("digit %c not drawn at column %d", ch, layout.Digits[i])
		}
	}
	sep, _ := digits.Lookup(glyph.SeparatorKey)
	for _, x := range layout.Separators {
		if !glyphAt(surface, layout.DigitsY, x, sep) {
			t.Fatalf("separator not drawn at column %d", x)
		}
	}
}

func TestClockLaneMovesUpWithoutInfoPanel(t *testing.T) {
	surface := newFakeSurface(120, 30)
	cfg := newStaticConfig(nil)
	digits := defaultDigits(t)
	lane := NewClockLane(surface, cfg, digits, palette.New(nil), DefaultLayout(), nil)
	now := time.Date(2026, 1, 1, 8, 8, 8, 0, time.Local)

	if err := lane.Draw(now); err != nil {
		t.Fatalf("Draw() error: %v", err)
	}
	if surface.clears.Load() != 0 {
		t.Fatalf("first frame must not clear the screen")
	}

	cfg.set(func(c *config.Config) { c.SystemInfo = false })
	if err := lane.Draw(now); err != nil {
		t.Fatalf("Draw() error: %v", err)
	}
	if err := lane.Draw(now); err != nil {
		t.Fatalf("Draw() error: %v", err)
	}
	if surface.clears.Load() != 1 {
		t.Fatalf("expected one clear when the digit row changes, got %d", surface.clears.Load())
	}
	eight, _ := digits.Lookup("8")
	if !glyphAt(surface, DefaultLayout().DigitsRow(false), DefaultLayout().Digits[1], eight) {
		t.Fatalf("expected digits on the upper row")
	}
}

func TestClockLaneMissingGlyphDrawsPlaceholder(t *testing.T) {
	surface := newFakeSurface(120, 30)
	digits := glyph.NewSet(map[string]glyph.Glyph{
		"0":                {"000", "000"},
		glyph.SeparatorKey: {" : ", " : "},
	})
	lane := NewClockLane(surface, newStaticConfig(nil), digits, palette.New(nil), DefaultLayout(), nil)

	if err := lane.Draw(time.Date(2026, 1, 1, 7, 0, 0, 0, time.Local)); err != nil {
		t.Fatalf("missing glyph must not fail the frame: %v", err)
	}
	layout := DefaultLayout()
	if got := surface.text(layout.DigitsY, layout.Digits[1], len([]rune(glyph.Placeholder))); got != glyph.Placeholder {
		t.Fatalf("expected placeholder for missing digit, got %q", got)
	}
	if got := surface.text(layout.DigitsY, layout.Digits[0], 3); got != "000" {
		t.Fatalf("expected known digit to be drawn, got %q", got)
	}
}

func TestClockLaneInvalidColor(t *testing.T) {
	surface := newFakeSurface(120, 30)
	cfg := newStaticConfig(func(c *config.Config) { c.DigitsColor = "PURPLE" })
	lane := NewClockLane(surface, cfg, defaultDigits(t), palette.New(nil), DefaultLayout(), nil)
	err := lane.Draw(time.Now())
	if !errors.IsNotValid(err) {
		t.Fatalf("expected NotValid for an unknown color, got %v", err)
	}
}

type fixedIdentity sysinfo.Identity

func (f fixedIdentity) Collect() sysinfo.Identity { return sysinfo.Identity(f) }

type fixedReadings []sensors.Reading

func (f fixedReadings) Collect() []sensors.Reading { return f }

func newInfoLane(t *testing.T, surface *fakeSurface, cfg ConfigProvider, readings fixedReadings) *InfoLane {
	return NewInfoLane(surface, cfg, InfoLaneOptions{
		Logos:    defaultLogos(t),
		Palette:  palette.New(surface.Colors),
		Identity: fixedIdentity{User: "alice", Host: "box", System: "Linux"},
		Sensors:  readings,
		Layout:   DefaultLayout(),
		Version:  "1.0.7",
	})
}

func TestInfoLaneDrawsPanels(t *testing.T) {
	surface := newFakeSurface(120, 30)
	cfg := newStaticConfig(func(c *config.Config) {
		c.LogoName = "Linux"
		c.Language = config.LanguageEN
	})
	readings := fixedReadings{
		{Component: sensors.CPU, Celsius: 64, Present: true},
		{Component: sensors.GPU, Celsius: 60, Present: true},
	}
	lane := newInfoLane(t, surface, cfg, readings)
	now := time.Date(2026, 10, 19, 9, 30, 0, 0, time.Local)
	if err := lane.Draw(now); err != nil {
		t.Fatalf("Draw() error: %v", err)
	}
	layout := DefaultLayout()

	if got := surface.text(layout.Header.Y, layout.Header.X, 27); got != "19.10.2026 | ЭЛЕКТРОНИКА 54" {
		t.Fatalf("unexpected header %q", got)
	}
	if got := surface.text(layout.Version.Y, layout.Version.X, 21); got != "Clock (version 1.0.7)" {
		t.Fatalf("unexpected version line %q", got)
	}
	if got := surface.text(layout.Info.Y, layout.Info.X, 9); got != "alice@box" {
		t.Fatalf("unexpected identity line %q", got)
	}
	if got := surface.text(layout.Info.Y+1, layout.Info.X, 9); got != strings.Repeat("─", 9) {
		t.Fatalf("unexpected identity rule %q", got)
	}
	if got := surface.text(layout.Temperature.Y, layout.Temperature.X, sensors.RuleWidth); got != strings.Repeat("─", sensors.RuleWidth) {
		t.Fatalf("unexpected temperature rule %q", got)
	}
	if got := surface.text(layout.Temperature.Y+1, layout.Temperature.X, 23); got != "CPU temperature: 64.0°C" {
		t.Fatalf("unexpected CPU line %q", got)
	}
	if got := surface.text(layout.Indicator.Y, layout.Indicator.X, 30); got != strings.Repeat("█", 30) {
		t.Fatalf("expected a full indicator at 62°C, got %q", got)
	}

	logo, _ := defaultLogos(t).Lookup("Linux")
	if !glyphAt(surface, layout.Logo.Y, layout.Logo.X, logo) {
		t.Fatalf("expected Linux logo at the origin")
	}
	if cfg.reloads.Load() != 1 {
		t.Fatalf("expected one reload per frame, got %d", cfg.reloads.Load())
	}
}

func TestInfoLaneIndicatorPartial(t *testing.T) {
	surface := newFakeSurface(120, 30)
	lane := newInfoLane(t, surface, newStaticConfig(nil), fixedReadings{{Component: sensors.CPU, Celsius: 47, Present: true}})
	if err := lane.Draw(time.Now()); err != nil {
		t.Fatalf("Draw() error: %v", err)
	}
	layout := DefaultLayout()
	want := strings.Repeat("█", 15) + strings.Repeat(" ", 15)
	if got := surface.text(layout.Indicator.Y, layout.Indicator.X, 30); got != want {
		t.Fatalf("expected 3 lit segments at 47°C, got %q", got)
	}
}

func TestInfoLaneNoReadings(t *testing.T) {
	surface := newFakeSurface(120, 30)
	lane := newInfoLane(t, surface, newStaticConfig(nil), nil)
	if err := lane.Draw(time.Now()); err != nil {
		t.Fatalf("Draw() error: %v", err)
	}
	layout := DefaultLayout()
	if got := surface.text(layout.Indicator.Y, layout.Indicator.X, 30); got != strings.Repeat(" ", 30) {
		t.Fatalf("expected a dark indicator without readings, got %q", got)
	}
	// Only the rule precedes the average when there are no readings.
	avgRow := layout.Temperature.Y + 1
	label := "Средняя тмп.   : "
	got := surface.text(avgRow, layout.Temperature.X, len([]rune(label))+len([]rune(glyph.Placeholder)))
	if got != label+glyph.Placeholder {
		t.Fatalf("expected placeholder average, got %q", got)
	}
}

func TestInfoLaneUnknownLogo(t *testing.T) {
	surface := newFakeSurface(120, 30)
	cfg := newStaticConfig(func(c *config.Config) { c.LogoName = "Plan9" })
	lane := newInfoLane(t, surface, cfg, nil)
	if err := lane.Draw(time.Now()); err != nil {
		t.Fatalf("Draw() error: %v", err)
	}
	layout := DefaultLayout()
	y := layout.Logo.Y + layout.LogoPlaceholder.Y
	x := layout.Logo.X + layout.LogoPlaceholder.X
	if got := surface.text(y, x, len([]rune(glyph.Placeholder))); got != glyph.Placeholder {
		t.Fatalf("expected logo placeholder, got %q", got)
	}
}

func TestInfoLaneReloadFailureKeepsDrawing(t *testing.T) {
	surface := newFakeSurface(120, 30)
	cfg := newStaticConfig(nil)
	cfg.err = errors.NotValidf("config")
	lane := newInfoLane(t, surface, cfg, nil)
	for i := 0; i < 3; i++ {
		if err := lane.Draw(time.Now()); err != nil {
			t.Fatalf("reload failure must not fail the frame: %v", err)
		}
	}
	if cfg.reloads.Load() != 3 {
		t.Fatalf("expected a reload every frame, got %d", cfg.reloads.Load())
	}
}

func TestInfoLaneInvalidColor(t *testing.T) {
	surface := newFakeSurface(120, 30)
	cfg := newStaticConfig(func(c *config.Config) { c.InfoColor = "TEAL" })
	lane := newInfoLane(t, surface, cfg, nil)
	if err := lane.Draw(time.Now()); !errors.IsNotValid(err) {
		t.Fatalf("expected NotValid for an unknown color, got %v", err)
	}
}

func TestDigitsRow(t *testing.T) {
	l := DefaultLayout()
	if l.DigitsRow(true) != 14 || l.DigitsRow(false) != 2 {
		t.Fatalf("unexpected digit rows %d/%d", l.DigitsRow(true), l.DigitsRow(false))
	}
}

func TestSnapshotLines(t *testing.T) {
	cfg := config.Defaults()
	cfg.Language = config.LanguageEN
	now := time.Date(2026, 10, 19, 0, 0, 0, 0, time.Local)
	snap := BuildSnapshot(now, cfg, fixedIdentity{User: "alice", Host: "box"},
		fixedReadings{{Component: sensors.CPU, Celsius: 41, Present: true}})
	lines := snap.Lines()
	if lines[0] != "19.10.2026 | ЭЛЕКТРОНИКА 54" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if lines[1] != "alice@box" {
		t.Fatalf("unexpected identity line %q", lines[1])
	}
	if last := lines[len(lines)-1]; last != "Severity: 2/6" {
		t.Fatalf("unexpected severity line %q", last)
	}
}
