// Package glyph loads the fixed-height text bitmaps used for the clock digits
// and the OS logos.
package glyph

import (
	_ "embed"
	"os"
	"path/filepath"
	"sort"

	"github.com/juju/errors"
	jsoniter "github.com/json-iterator/go"
)

// SeparatorKey is the digit-table key of the colon between hours, minutes and seconds.
const SeparatorKey = "points"

// Placeholder is drawn wherever a value or a glyph is unavailable.
const Placeholder = "¯\\_(`-`)_/¯"

var (
	//go:embed assets/digits.json
	DefaultDigits []byte

	//go:embed assets/logos.json
	DefaultLogos []byte
)

// Fallback is the one-line marker glyph rendered in place of a missing key.
var Fallback = Glyph{Placeholder}

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Glyph is one renderable symbol: an ordered list of text lines.
type Glyph []string

// Set is an immutable key -> glyph table.
type Set struct {
	glyphs map[string]Glyph
	keys   []string
}

// NewSet copies m into a Set.
func NewSet(m map[string]Glyph) *Set {
	s := &Set{
		glyphs: make(map[string]Glyph, len(m)),
		keys:   make([]string, 0, len(m)),
	}
	for key, g := range m {
		s.glyphs[key] = append(Glyph(nil), g...)
		s.keys = append(s.keys, key)
	}
	sort.Strings(s.keys)
	return s
}

// Lookup returns the glyph stored under key. A missing key is reported as a
// NotFound error; callers draw Fallback instead.
func (s *Set) Lookup(key string) (Glyph, error) {
	if s == nil {
		return nil, errors.NotFoundf("glyph %q", key)
	}
	g, ok := s.glyphs[key]
	if !ok {
		return nil, errors.NotFoundf("glyph %q", key)
	}
	return g, nil
}

// Height is the line count of the first glyph in key order. All glyphs of a
// set are expected to share it.
func (s *Set) Height() int {
	if s == nil || len(s.keys) == 0 {
		return 0
	}
	return len(s.glyphs[s.keys[0]])
}

// Keys returns the sorted key list.
func (s *Set) Keys() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.keys...)
}

func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// Decode parses a JSON object of key -> list of lines.
func Decode(data []byte) (*Set, error) {
	var raw map[string]Glyph
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.NewNotValid(err, "glyph table is not valid JSON")
	}
	if len(raw) == 0 {
		return nil, errors.NotValidf("empty glyph table")
	}
	return NewSet(raw), nil
}

// LoadFile reads a glyph table from path. When the file does not exist the
// defaults are written there first, so the user gets an editable copy.
func LoadFile(path string, defaults []byte) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, errors.Annotatef(err, "read glyph table %s", path)
		}
		if err := writeDefaults(path, defaults); err != nil {
			return nil, errors.Trace(err)
		}
		data = defaults
	}
	set, err := Decode(data)
	if err != nil {
		return nil, errors.Annotatef(err, "glyph table %s", path)
	}
	return set, nil
}

func writeDefaults(path string, defaults []byte) error {
	if len(defaults) == 0 {
		return errors.NotFoundf("default content for %s", path)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Annotatef(err, "create %s", dir)
		}
	}
	if err := os.WriteFile(path, defaults, 0o644); err != nil {
		return errors.Annotatef(err, "write default glyph table %s", path)
	}
	return nil
}
