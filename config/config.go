package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jrh3k5/qrsvg/archive"
	"github.com/jrh3k5/qrsvg/qr"
	"github.com/jrh3k5/qrsvg/svg"
)

type Config struct {
	Encoder EncoderConfig `yaml:"encoder"`
	Render  RenderConfig  `yaml:"render"`
	Archive ArchiveConfig `yaml:"archive"`
	Server  ServerConfig  `yaml:"server"`
	Logger  LoggerConfig  `yaml:"logger"`
}

type EncoderConfig struct {
	Backend string `yaml:"backend"`
	Level   string `yaml:"level"`
	Mode    string `yaml:"mode"`
	Mask    *int   `yaml:"mask"`
}

type RenderConfig struct {
	ModuleSize   int    `yaml:"module_size"`
	QuietZone    int    `yaml:"quiet_zone"`
	Foreground   string `yaml:"foreground"`
	Background   string `yaml:"background"`
	EmbedPayload bool   `yaml:"embed_payload"`
}

type ArchiveConfig struct {
	Dir string `yaml:"dir"`
}

type ServerConfig struct {
	Host          string      `yaml:"host"`
	Port          string      `yaml:"port"`
	ExportEnabled bool        `yaml:"export_enabled"`
	Cache         CacheConfig `yaml:"cache"`
}

type CacheConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Backend  string        `yaml:"backend"`
	RedisURL string        `yaml:"redis_url"`
	TTL      time.Duration `yaml:"ttl"`
}

type LoggerConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Encoder: EncoderConfig{
			Backend: qr.BackendCoding,
			Level:   "M",
			Mode:    "auto",
		},
		Render: RenderConfig{
			ModuleSize: svg.DefaultModuleSize,
			QuietZone:  svg.DefaultQuietZone,
			Foreground: svg.DefaultForeground,
			Background: svg.DefaultBackground,
		},
		Archive: ArchiveConfig{
			Dir: archive.DefaultDir,
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: ":8080",
			Cache: CacheConfig{
				Enabled: true,
				Backend: CacheBackendMemory,
				TTL:     time.Hour,
			},
		},
		Logger: LoggerConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// Read loads the YAML file over the defaults. An empty file name yields the
// defaults.
func Read(file string) (*Config, error) {
	config := Default()
	if file == "" {
		return config, nil
	}

	fileBytes, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file '%s': %w", file, err)
	}

	if err := yaml.Unmarshal(fileBytes, config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML in file '%s': %w", file, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in file '%s': %w", file, err)
	}

	return config, nil
}

// Validate checks enumerations and ranges.
func (c *Config) Validate() error {
	if _, err := c.QROptions(); err != nil {
		return err
	}

	switch c.Encoder.Backend {
	case "", qr.BackendCoding, qr.BackendSkip2:
	default:
		return fmt.Errorf("unsupported encoder backend: %v", c.Encoder.Backend)
	}

	if c.Render.ModuleSize <= 0 {
		return fmt.Errorf("render module size must be positive, got %d", c.Render.ModuleSize)
	}

	if c.Render.QuietZone < 0 {
		return fmt.Errorf("render quiet zone must not be negative, got %d", c.Render.QuietZone)
	}

	if port, err := strconv.Atoi(strings.TrimPrefix(c.Server.Port, ":")); err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("server port must be a number between 1 and 65535, got %q", c.Server.Port)
	}

	if c.Server.Cache.Enabled {
		switch c.Server.Cache.Backend {
		case CacheBackendMemory:
		case CacheBackendRedis:
			if c.Server.Cache.RedisURL == "" {
				return fmt.Errorf("the redis cache backend requires a redis_url")
			}
		default:
			return fmt.Errorf("unsupported cache backend: %v", c.Server.Cache.Backend)
		}
	}

	return nil
}

// Addr returns the address the server listens on. Port may be given with or
// without a leading colon.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strings.TrimPrefix(s.Port, ":"))
}

// GetMask returns the configured mask pattern, or qr.MaskAuto when none is set.
func (e EncoderConfig) GetMask() int {
	if e.Mask == nil {
		return qr.MaskAuto
	}

	return *e.Mask
}

// QROptions converts the encoder section to symbol options.
func (c *Config) QROptions() (qr.Options, error) {
	level, err := qr.ParseLevel(c.Encoder.Level)
	if err != nil {
		return qr.Options{}, err
	}

	mode, err := qr.ParseMode(c.Encoder.Mode)
	if err != nil {
		return qr.Options{}, err
	}

	mask := c.Encoder.GetMask()
	if mask != qr.MaskAuto && (mask < 0 || mask > 7) {
		return qr.Options{}, fmt.Errorf("mask pattern must be within [0, 7], got %d", mask)
	}

	return qr.Options{
		Level: level,
		Mode:  mode,
		Mask:  mask,
	}, nil
}

// SVGOptions converts the render section to rendering options.
func (c *Config) SVGOptions() svg.Options {
	return svg.Options{
		ModuleSize: c.Render.ModuleSize,
		QuietZone:  c.Render.QuietZone,
		Foreground: c.Render.Foreground,
		Background: c.Render.Background,
	}
}
