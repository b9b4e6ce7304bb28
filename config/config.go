// Package config owns the live dashboard configuration (colors, enabled lanes,
// language, logo override) and the startup settings that locate it.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/juju/errors"
	jsoniter "github.com/json-iterator/go"
	"github.com/leebenson/conform"
	"github.com/zeebo/xxh3"
	"gopkg.in/yaml.v3"
)

const (
	LanguageRU = "ru"
	LanguageEN = "en"
)

// Config represents the live dashboard configuration.
type Config struct {
	DigitsColor string `yaml:"digits_color" json:"digits_color" conform:"trim,upper"`
	InfoColor   string `yaml:"system_info_color" json:"system_info_color" conform:"trim,upper"`
	LogoColor   string `yaml:"logo_color" json:"logo_color" conform:"trim,upper"`
	Clock       bool   `yaml:"clock" json:"clock"`
	SystemInfo  bool   `yaml:"system_info" json:"system_info"`
	Language    string `yaml:"language" json:"language" conform:"trim,lower"`
	LogoName    string `yaml:"logo_name" json:"logo_name" conform:"trim"`
}

// Defaults returns the configuration written when no file exists.
func Defaults() Config {
	return Config{
		DigitsColor: "MAGENTA",
		InfoColor:   "GREEN",
		LogoColor:   "BLUE",
		Clock:       true,
		SystemInfo:  true,
		Language:    LanguageRU,
		LogoName:    "",
	}
}

// Normalize trims/cases string fields, fills blank colors with defaults and
// forces the language into the supported set.
func (c *Config) Normalize() error {
	if err := conform.Strings(c); err != nil {
		return errors.Trace(err)
	}
	def := Defaults()
	if c.DigitsColor == "" {
		c.DigitsColor = def.DigitsColor
	}
	if c.InfoColor == "" {
		c.InfoColor = def.InfoColor
	}
	if c.LogoColor == "" {
		c.LogoColor = def.LogoColor
	}
	c.Language = VerifyLanguage(c.Language)
	return nil
}

// VerifyLanguage returns language when supported and "ru" otherwise.
func VerifyLanguage(language string) string {
	switch strings.ToLower(strings.TrimSpace(language)) {
	case LanguageEN:
		return LanguageEN
	default:
		return LanguageRU
	}
}

// Store loads the configuration file and re-reads it on demand. Current is
// lock-free so render lanes can read it every frame.
type Store struct {
	path    string
	mu      sync.Mutex
	current atomic.Pointer[Config]
	sum     uint64
	hashed  bool
}

// Open builds a Store for path and performs the first load. An absent file is
// recreated with defaults; an undecodable one is reported as NotValid.
func Open(path string) (*Store, error) {
	s := NewStore(path)
	if _, err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewStore builds a Store without touching the filesystem. Current returns
// defaults until the first successful Reload.
func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Current returns the last successfully loaded configuration.
func (s *Store) Current() Config {
	if s == nil {
		return Defaults()
	}
	if cfg := s.current.Load(); cfg != nil {
		return *cfg
	}
	return Defaults()
}

// Reload re-reads the file. Unchanged content (by xxh3 hash) skips decoding.
// On error the previous configuration stays current.
func (s *Store) Reload() (Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			return s.Current(), errors.Annotatef(err, "read config %s", s.path)
		}
		cfg := Defaults()
		if err := s.persistLocked(cfg); err != nil {
			return s.Current(), err
		}
		s.current.Store(&cfg)
		s.hashed = false
		return cfg, nil
	}

	sum := xxh3.Hash(data)
	if s.hashed && sum == s.sum && s.current.Load() != nil {
		return s.Current(), nil
	}

	cfg := Defaults()
	if err := decode(s.path, data, &cfg); err != nil {
		return s.Current(), errors.NewNotValid(err, "config "+s.path+" is corrupt")
	}
	if err := cfg.Normalize(); err != nil {
		return s.Current(), errors.Annotatef(err, "normalize config %s", s.path)
	}
	s.current.Store(&cfg)
	s.sum = sum
	s.hashed = true
	return cfg, nil
}

func (s *Store) persistLocked(cfg Config) error {
	data, err := encode(s.path, cfg)
	if err != nil {
		return errors.Annotatef(err, "encode default config")
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Annotatef(err, "create config directory %s", dir)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return errors.Annotatef(err, "write default config %s", s.path)
	}
	return nil
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

func decode(path string, data []byte, cfg *Config) error {
	if isJSON(path) {
		return jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, cfg)
	}
	return yaml.Unmarshal(data, cfg)
}

func encode(path string, cfg Config) ([]byte, error) {
	if isJSON(path) {
		return jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(cfg, "", "    ")
	}
	return yaml.Marshal(cfg)
}
