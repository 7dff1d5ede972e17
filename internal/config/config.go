package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/greatbody/gbkit/internal/transcoder"
)

// Color modes for terminal output.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ErrInvalidConfig indicates a config file with values gbkit cannot use.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds user defaults for the gbkit commands. Pointer fields tell
// "unset" from an explicit false.
type Config struct {
	DefaultTarget      string   `json:"default_target" toml:"default_target"`
	InferSource        *bool    `json:"infer_source" toml:"infer_source"`
	ReplaceUnsupported *bool    `json:"replace_unsupported" toml:"replace_unsupported"`
	AllowedExtensions  []string `json:"allowed_extensions" toml:"allowed_extensions"`
	Color              string   `json:"color" toml:"color"`
}

// LoadConfig reads a JSON or TOML file, chosen by extension, and fills
// anything the file leaves out from DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}

	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func DefaultConfig() *Config {
	return &Config{
		DefaultTarget:      transcoder.EncodingGBK.String(),
		InferSource:        boolPtr(true),
		ReplaceUnsupported: boolPtr(false),
		AllowedExtensions:  []string{".txt", ".csv", ".log", ".ini", ".conf", ".properties", ".md"},
		Color:              ColorAuto,
	}
}

func (c *Config) fillDefaults() {
	def := DefaultConfig()
	if c.DefaultTarget == "" {
		c.DefaultTarget = def.DefaultTarget
	}
	if c.InferSource == nil {
		c.InferSource = def.InferSource
	}
	if c.ReplaceUnsupported == nil {
		c.ReplaceUnsupported = def.ReplaceUnsupported
	}
	if c.AllowedExtensions == nil {
		c.AllowedExtensions = def.AllowedExtensions
	}
	if c.Color == "" {
		c.Color = def.Color
	}
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	if _, err := transcoder.ParseEncoding(c.DefaultTarget); err != nil {
		return fmt.Errorf("%w: default_target: %v", ErrInvalidConfig, err)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%w: color must be auto, always or never, got %q", ErrInvalidConfig, c.Color)
	}
	return nil
}

func boolPtr(b bool) *bool { return &b }
