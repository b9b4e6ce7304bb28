package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jinzhu/configor"
	"github.com/juju/errors"
	"github.com/leebenson/conform"
)

// Settings holds startup-only options. Values come from struct defaults, an
// optional settings file and CLOCK_* environment variables, in that order.
type Settings struct {
	// Directory holding the live config and the glyph tables
	ConfigDir string `yaml:"config_dir" default:"config_files" env:"CLOCK_CONFIG_DIR" conform:"trim" validate:"required"`

	// Live configuration file name; .yaml or .json
	ConfigFile string `yaml:"config_file" default:"clock_config.yaml" env:"CLOCK_CONFIG_FILE" conform:"trim" validate:"required"`

	DigitsFile string `yaml:"digits_file" default:"digits.json" env:"CLOCK_DIGITS_FILE" conform:"trim" validate:"required"`
	LogosFile  string `yaml:"logos_file" default:"logos.json" env:"CLOCK_LOGOS_FILE" conform:"trim" validate:"required"`

	// Lane period in milliseconds
	FramePeriodMS int `yaml:"frame_period_ms" default:"100" env:"CLOCK_FRAME_MS" validate:"min=16,max=5000"`

	// How long collected host identity stays cached
	InfoCacheSeconds int `yaml:"info_cache_seconds" default:"5" env:"CLOCK_INFO_CACHE_SECONDS" validate:"min=0,max=3600"`

	Log LogSettings `yaml:"log"`
}

// LogSettings configures the rotating log file.
type LogSettings struct {
	// "off" disables the file sink
	File       string `yaml:"file" default:"logs/clock.log" env:"CLOCK_LOG_FILE" conform:"trim"`
	Level      string `yaml:"level" default:"info" env:"CLOCK_LOG_LEVEL" conform:"trim,lower" validate:"oneof=panic fatal error warn warning info debug trace"`
	MaxSizeMB  int    `yaml:"max_size_mb" default:"10" env:"CLOCK_LOG_MAX_SIZE_MB" validate:"min=1,max=1024"`
	MaxBackups int    `yaml:"max_backups" default:"3" env:"CLOCK_LOG_MAX_BACKUPS" validate:"min=0,max=100"`
}

// LoadSettings loads settings from path (which may be empty or missing),
// applying defaults and environment overrides, then validates them.
func LoadSettings(path string) (*Settings, error) {
	var s Settings
	loader := configor.New(&configor.Config{ENVPrefix: "CLOCK", Silent: true})
	files := make([]string, 0, 1)
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		files = append(files, trimmed)
	}
	if err := loader.Load(&s, files...); err != nil {
		return nil, errors.Annotatef(err, "load settings %s", path)
	}
	if err := conform.Strings(&s); err != nil {
		return nil, errors.Trace(err)
	}
	if err := validator.New().Struct(&s); err != nil {
		return nil, errors.NewNotValid(err, "invalid settings")
	}
	return &s, nil
}

func (s *Settings) ConfigPath() string {
	return filepath.Join(s.ConfigDir, s.ConfigFile)
}

func (s *Settings) DigitsPath() string {
	return filepath.Join(s.ConfigDir, s.DigitsFile)
}

func (s *Settings) LogosPath() string {
	return filepath.Join(s.ConfigDir, s.LogosFile)
}

func (s *Settings) FramePeriod() time.Duration {
	return time.Duration(s.FramePeriodMS) * time.Millisecond
}

func (s *Settings) InfoCacheTTL() time.Duration {
	return time.Duration(s.InfoCacheSeconds) * time.Second
}

// Print displays the settings (stdout, before the screen takes over).
func (s *Settings) Print() {
	fmt.Printf("Config: %s\n", s.ConfigPath())
	fmt.Printf("Glyphs: %s, %s\n", s.DigitsPath(), s.LogosPath())
	fmt.Printf("Frame period: %s (info cache %s)\n", s.FramePeriod(), s.InfoCacheTTL())
	logFile := s.Log.File
	if !s.Log.FileEnabled() {
		logFile = "<disabled>"
	}
	fmt.Printf("Log: %s (level=%s)\n", logFile, s.Log.Level)
}

// FileEnabled reports whether a log file should be written.
func (l LogSettings) FileEnabled() bool {
	return l.File != "" && !strings.EqualFold(l.File, "off")
}
