package ui

import (
	"context"
	"time"

	"clock/config"
	"clock/internal/ratelimit"

	"github.com/gdamore/tcell/v2"
	"github.com/juju/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const DefaultPeriod = 100 * time.Millisecond

// ConfigProvider is the live configuration as the lanes see it.
type ConfigProvider interface {
	Current() config.Config
	Reload() (config.Config, error)
}

// Lane draws one region of the surface per frame.
type Lane interface {
	Name() string
	Draw(now time.Time) error
}

// Options tunes a Scheduler. Zero values pick defaults.
type Options struct {
	Period time.Duration
	Flag   *StopFlag
	Log    *logrus.Entry
}

// Scheduler runs the clock lane, the info lane and the key-wait lane until a
// key is pressed, the context is cancelled or a lane fails.
type Scheduler struct {
	surface Surface
	config  ConfigProvider
	clock   Lane
	info    Lane
	period  time.Duration
	flag    *StopFlag
	log     *logrus.Entry
	metrics map[string]*LaneMetrics
	overrun *ratelimit.Counter
}

// NewScheduler wires the lanes. Either lane may be nil; whether it runs is
// decided by the configuration at Run time.
func NewScheduler(surface Surface, cfg ConfigProvider, clock, info Lane, opts Options) *Scheduler {
	if opts.Period <= 0 {
		opts.Period = DefaultPeriod
	}
	if opts.Flag == nil {
		opts.Flag = NewStopFlag()
	}
	if opts.Log == nil {
		opts.Log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Scheduler{
		surface: surface,
		config:  cfg,
		clock:   clock,
		info:    info,
		period:  opts.Period,
		flag:    opts.Flag,
		log:     opts.Log,
		metrics: make(map[string]*LaneMetrics),
		overrun: ratelimit.NewCounter(time.Minute),
	}
}

func (s *Scheduler) Flag() *StopFlag {
	return s.flag
}

// Metrics returns the frame metrics of a lane that ran, or nil.
func (s *Scheduler) Metrics(lane string) *LaneMetrics {
	return s.metrics[lane]
}

// Purpose: Run the enabled lanes plus the key-wait lane to completion.
// Key aspects: No enabled lane is an error before any goroutine starts; a lane
// error stops every lane and is returned; context cancellation is a clean stop.
// Upstream: main after the screen is initialised.
// Downstream: runLane, waitForKey, errgroup.
func (s *Scheduler) Run(ctx context.Context) error {
	cfg := s.config.Current()
	var lanes []Lane
	if cfg.SystemInfo && s.info != nil {
		lanes = append(lanes, s.info)
	}
	if cfg.Clock && s.clock != nil {
		lanes = append(lanes, s.clock)
	}
	if len(lanes) == 0 {
		return &NoActiveLaneError{Language: cfg.Language}
	}

	g, gctx := errgroup.WithContext(ctx)
	runCtx, cancel := context.WithCancel(gctx)
	defer cancel()

	for _, lane := range lanes {
		lane := lane
		m := NewLaneMetrics(lane.Name())
		s.metrics[lane.Name()] = m
		g.Go(func() error {
			return s.runLane(runCtx, lane, m)
		})
	}
	g.Go(func() error {
		defer cancel()
		s.waitForKey()
		return nil
	})
	g.Go(func() error {
		<-runCtx.Done()
		s.flag.Stop()
		// Unblocks PollEvent in waitForKey.
		_ = s.surface.PostEvent(tcell.NewEventInterrupt(nil))
		return nil
	})

	err := g.Wait()
	for _, lane := range lanes {
		s.log.Info(s.metrics[lane.Name()].Summary())
	}
	return err
}

func (s *Scheduler) runLane(ctx context.Context, lane Lane, m *LaneMetrics) error {
	for s.flag.Running() {
		start := time.Now()
		if err := lane.Draw(start); err != nil {
			s.flag.Stop()
			return errors.Annotatef(err, "%s lane", lane.Name())
		}
		s.surface.Show()

		elapsed := time.Since(start)
		overrun := elapsed > s.period
		m.ObserveFrame(elapsed, overrun)
		if overrun {
			s.overrun.Warn(s.log.WithFields(logrus.Fields{"lane": lane.Name(), "elapsed": elapsed}), nil, "frame overran its period")
			continue
		}
		if !sleepWithContext(ctx, s.period-elapsed) {
			return nil
		}
	}
	return nil
}

// waitForKey blocks on terminal events. Any key stops all lanes; a resize
// redraws the whole surface; an interrupt arrives once the lanes are stopping.
func (s *Scheduler) waitForKey() {
	for {
		switch s.surface.PollEvent().(type) {
		case nil:
			s.flag.Stop()
			return
		case *tcell.EventKey:
			s.flag.Stop()
			return
		case *tcell.EventResize:
			s.surface.Sync()
		case *tcell.EventInterrupt:
			if !s.flag.Running() {
				return
			}
		}
	}
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
