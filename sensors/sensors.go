// Package sensors reads hardware temperatures and reduces them to the
// dashboard's average and 0..6 severity scale.
package sensors

import (
	"github.com/sirupsen/logrus"
)

// FallbackGroup is consulted when neither of a component's groups exists.
const FallbackGroup = "acpitz"

// SensorSource reports temperature groups keyed by chip/zone name. Each group
// lists its sensors in discovery order, in degrees Celsius.
type SensorSource interface {
	Groups() (map[string][]float64, error)
}

// SourceFunc adapts a function to SensorSource.
type SourceFunc func() (map[string][]float64, error)

func (f SourceFunc) Groups() (map[string][]float64, error) { return f() }

// Reading is one component temperature. An absent reading is never zero.
type Reading struct {
	Component string
	Celsius   float64
	Present   bool
}

// Component names the primary and secondary sensor group of one hardware part.
type Component struct {
	Key       string
	Primary   string
	Secondary string
}

// Component keys, in display order.
const (
	CPU         = "cpu"
	GPU         = "gpu"
	RAM         = "ram"
	Storage     = "storage"
	Motherboard = "motherboard"
)

// DefaultComponents covers AMD/Intel CPUs, AMD/NVIDIA GPUs, DDR5 modules,
// NVMe drives and the ACPI board zone.
var DefaultComponents = []Component{
	{Key: CPU, Primary: "k10temp", Secondary: "coretemp"},
	{Key: GPU, Primary: "amdgpu", Secondary: "nvidia"},
	{Key: RAM, Primary: "spd5118"},
	{Key: Storage, Primary: "nvme"},
	{Key: Motherboard, Primary: FallbackGroup},
}

// ReadComponent picks the first sensor of primary, else of secondary, else of
// the fallback group. A group that exists but is empty yields an absent
// reading; it does not fall through.
func ReadComponent(groups map[string][]float64, primary, secondary string) Reading {
	for _, name := range []string{primary, secondary, FallbackGroup} {
		if name == "" {
			continue
		}
		values, ok := groups[name]
		if !ok {
			continue
		}
		if len(values) == 0 {
			return Reading{}
		}
		return Reading{Celsius: values[0], Present: true}
	}
	return Reading{}
}

// Collector reads every configured component from a source.
type Collector struct {
	Source     SensorSource
	Components []Component
	Log        *logrus.Entry
}

// NewCollector builds a Collector over DefaultComponents.
func NewCollector(source SensorSource, log *logrus.Entry) *Collector {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Collector{Source: source, Components: DefaultComponents, Log: log}
}

// Collect returns one reading per component, in component order. A failing
// source yields all-absent readings.
func (c *Collector) Collect() []Reading {
	components := c.Components
	if len(components) == 0 {
		components = DefaultComponents
	}
	var groups map[string][]float64
	if c.Source != nil {
		var err error
		groups, err = c.Source.Groups()
		if err != nil && c.Log != nil {
			c.Log.WithError(err).Debug("sensor source failed")
		}
	}
	out := make([]Reading, len(components))
	for i, comp := range components {
		r := ReadComponent(groups, comp.Primary, comp.Secondary)
		r.Component = comp.Key
		out[i] = r
	}
	return out
}

// Average is the mean of the present readings; ok is false when none are.
func Average(readings []Reading) (float64, bool) {
	var sum float64
	n := 0
	for _, r := range readings {
		if !r.Present {
			continue
		}
		sum += r.Celsius
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

type band struct {
	lower, upper float64
	level        int
}

var bands = []band{
	{0, 40, 1},
	{40, 45, 2},
	{45, 50, 3},
	{50, 55, 4},
	{55, 60, 5},
	{60, 100, 6},
}

// MaxSeverity is the number of indicator segments.
const MaxSeverity = 6

// Severity maps an average to 1..6; absent, negative or >= 100 averages map
// to 0.
func Severity(avg float64, ok bool) int {
	if !ok {
		return 0
	}
	for _, b := range bands {
		if b.lower <= avg && avg < b.upper {
			return b.level
		}
	}
	return 0
}
