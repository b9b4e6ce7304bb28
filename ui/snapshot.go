package ui

import (
	"fmt"
	"time"

	"clock/config"
	"clock/sensors"
	"clock/sysinfo"
)

// Snapshot is one frame of the info panel as plain text, printed instead of
// the dashboard when stdout is not a terminal.
type Snapshot struct {
	GeneratedAt      time.Time
	Header           string
	InfoLines        []string
	TemperatureLines []string
	Severity         int
}

// BuildSnapshot collects identity and temperatures once.
func BuildSnapshot(now time.Time, cfg config.Config, identity IdentitySource, readings ReadingSource) Snapshot {
	snap := Snapshot{GeneratedAt: now, Header: HeaderLine(now)}
	if identity != nil {
		snap.InfoLines = sysinfo.Lines(sysinfo.Records(identity.Collect(), cfg.Language))
	}
	var values []sensors.Reading
	if readings != nil {
		values = readings.Collect()
	}
	snap.TemperatureLines = sensors.Lines(sensors.Records(values, cfg.Language))
	snap.Severity = sensors.Severity(sensors.Average(values))
	return snap
}

// Lines renders the snapshot top to bottom.
func (s Snapshot) Lines() []string {
	out := make([]string, 0, len(s.InfoLines)+len(s.TemperatureLines)+3)
	out = append(out, s.Header)
	out = append(out, s.InfoLines...)
	out = append(out, s.TemperatureLines...)
	out = append(out, fmt.Sprintf("Severity: %d/%d", s.Severity, sensors.MaxSeverity))
	return out
}
