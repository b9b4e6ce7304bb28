//go:build !linux

package sensors

// SysfsSource has nothing to read outside Linux; every component is absent.
type SysfsSource struct{}

func NewSystemSource() *SysfsSource { return &SysfsSource{} }

func (s *SysfsSource) Groups() (map[string][]float64, error) {
	return map[string][]float64{}, nil
}
