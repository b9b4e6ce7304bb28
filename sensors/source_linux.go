//go:build linux

package sensors

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/juju/errors"
	"github.com/prometheus/procfs/sysfs"
)

// SysfsSource reads hwmon chips and, for names hwmon does not report,
// thermal zones.
type SysfsSource struct {
	root string
}

// NewSystemSource reads from /sys.
func NewSystemSource() *SysfsSource {
	return NewSysfsSource(sysfs.DefaultMountPoint)
}

// NewSysfsSource reads from a sysfs tree mounted at root.
func NewSysfsSource(root string) *SysfsSource {
	return &SysfsSource{root: root}
}

func (s *SysfsSource) Groups() (map[string][]float64, error) {
	groups, err := s.hwmon()
	if err != nil {
		return nil, errors.Trace(err)
	}
	if err := s.thermalZones(groups); err != nil {
		// Zones are supplementary; hwmon readings still count.
		if len(groups) == 0 {
			return nil, errors.Trace(err)
		}
	}
	return groups, nil
}

// hwmon reads <root>/class/hwmon/hwmon*/temp*_input (millidegrees) grouped by
// the chip's name file.
func (s *SysfsSource) hwmon() (map[string][]float64, error) {
	groups := make(map[string][]float64)
	chips, err := filepath.Glob(filepath.Join(s.root, "class", "hwmon", "hwmon*"))
	if err != nil {
		return nil, errors.Trace(err)
	}
	sort.Slice(chips, func(i, j int) bool { return naturalLess(chips[i], chips[j]) })
	for _, chip := range chips {
		name, err := readTrimmed(filepath.Join(chip, "name"))
		if err != nil || name == "" {
			continue
		}
		inputs, _ := filepath.Glob(filepath.Join(chip, "temp*_input"))
		sort.Slice(inputs, func(i, j int) bool { return naturalLess(inputs[i], inputs[j]) })
		values := groups[name]
		for _, input := range inputs {
			raw, err := readTrimmed(input)
			if err != nil {
				continue
			}
			milli, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				continue
			}
			values = append(values, milli/1000)
		}
		if values == nil {
			values = []float64{}
		}
		groups[name] = values
	}
	return groups, nil
}

func (s *SysfsSource) thermalZones(groups map[string][]float64) error {
	fs, err := sysfs.NewFS(s.root)
	if err != nil {
		return errors.Trace(err)
	}
	zones, err := fs.ClassThermalZoneStats()
	if err != nil {
		return errors.Trace(err)
	}
	seen := make(map[string]bool, len(groups))
	for name := range groups {
		seen[name] = true
	}
	for _, zone := range zones {
		if zone.Type == "" || seen[zone.Type] {
			continue
		}
		groups[zone.Type] = append(groups[zone.Type], float64(zone.Temp)/1000)
	}
	return nil
}

func readTrimmed(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// naturalLess orders "temp2_input" before "temp10_input".
func naturalLess(a, b string) bool {
	na, pa := trailingNumber(a)
	nb, pb := trailingNumber(b)
	if pa != pb {
		return pa < pb
	}
	return na < nb
}

func trailingNumber(path string) (int, string) {
	base := strings.TrimSuffix(filepath.Base(path), "_input")
	i := len(base)
	for i > 0 && base[i-1] >= '0' && base[i-1] <= '9' {
		i--
	}
	n, _ := strconv.Atoi(base[i:])
	return n, filepath.Dir(path) + "/" + base[:i]
}
