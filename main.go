// Command clock renders a full-screen terminal clock with a host info panel,
// OS logo and hardware temperatures until a key is pressed.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"clock/config"
	"clock/glyph"
	"clock/palette"
	"clock/sensors"
	"clock/sysinfo"
	"clock/ui"

	"github.com/gdamore/tcell/v2"
	"github.com/juju/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// Version will be set at build time
var Version = "1.0.7"

const (
	envSettingsPath     = "CLOCK_SETTINGS"
	defaultSettingsPath = "settings.yaml"
)

func main() {
	if err := run(); err != nil {
		if nal, ok := errors.Cause(err).(*ui.NoActiveLaneError); ok {
			fmt.Fprintln(os.Stderr, "\n"+nal.Error())
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, errors.ErrorStack(err))
		os.Exit(1)
	}
}

// Purpose: Wire settings, logging, stores and collectors, then either print a
// snapshot or run the dashboard.
// Key aspects: A corrupt config or glyph table is fatal before the screen
// starts; the console log sink is detached while tcell owns the terminal.
// Upstream: main.
// Downstream: config, glyph, sysinfo, sensors, ui.Scheduler.
func run() error {
	settings, err := config.LoadSettings(settingsPath())
	if err != nil {
		return errors.Trace(err)
	}
	logger, fanout, err := setupLogging(settings.Log, os.Stderr)
	if err != nil {
		logger.WithError(err).Warn("file logging disabled")
	}
	defer fanout.Close()
	log := logger.WithField("module", "main")

	store, err := config.Open(settings.ConfigPath())
	if err != nil {
		return errors.Trace(err)
	}
	digits, err := glyph.LoadFile(settings.DigitsPath(), glyph.DefaultDigits)
	if err != nil {
		return errors.Trace(err)
	}
	logos, err := glyph.LoadFile(settings.LogosPath(), glyph.DefaultLogos)
	if err != nil {
		return errors.Trace(err)
	}

	identity := sysinfo.NewCollector(settings.InfoCacheTTL(), logger.WithField("module", "sysinfo"))
	temperatures := sensors.NewCollector(sensors.NewSystemSource(), logger.WithField("module", "sensors"))

	if !isStdoutTTY() {
		log.Info("stdout is not a terminal; printing a snapshot")
		snap := ui.BuildSnapshot(time.Now(), store.Current(), identity, temperatures)
		return writeSnapshot(os.Stdout, snap)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Infof("Clock v%s starting (config %s, frame period %s)", Version, store.Path(), settings.FramePeriod())
	return runDashboard(ctx, settings, store, digits, logos, identity, temperatures, fanout, logger)
}

func runDashboard(ctx context.Context, settings *config.Settings, store *config.Store, digits, logos *glyph.Set,
	identity ui.IdentitySource, temperatures ui.ReadingSource, fanout *logFanout, logger *logrus.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Annotatef(err, "create screen")
	}
	if err := screen.Init(); err != nil {
		return errors.Annotatef(err, "initialise screen")
	}
	fanout.SetConsoleSink(nil, false)
	defer fanout.SetConsoleSink(os.Stderr, true)
	defer screen.Fini()

	screen.HideCursor()
	screen.Clear()

	pal := palette.New(screen.Colors)
	layout := ui.DefaultLayout()
	clockLane := ui.NewClockLane(screen, store, digits, pal, layout, logger.WithField("module", "clock"))
	infoLane := ui.NewInfoLane(screen, store, ui.InfoLaneOptions{
		Logos:    logos,
		Palette:  pal,
		Identity: identity,
		Sensors:  temperatures,
		Layout:   layout,
		Version:  Version,
		Log:      logger.WithField("module", "info"),
	})
	scheduler := ui.NewScheduler(screen, store, clockLane, infoLane, ui.Options{
		Period: settings.FramePeriod(),
		Log:    logger.WithField("module", "scheduler"),
	})
	return scheduler.Run(ctx)
}

func writeSnapshot(w io.Writer, snap ui.Snapshot) error {
	for _, line := range snap.Lines() {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}

func settingsPath() string {
	if path := strings.TrimSpace(os.Getenv(envSettingsPath)); path != "" {
		return path
	}
	return defaultSettingsPath
}

// Purpose: Report whether stdout is a TTY for UI gating.
// Key aspects: Uses term.IsTerminal on stdout fd.
// Upstream: run.
// Downstream: term.IsTerminal.
func isStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
