// Package config loads the radix command line settings from a TOML file.
package config

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/khalid-nowaf/radixtree/pkg/radix"
	"github.com/pkg/errors"
)

// FileName is the config file looked up in the working directory when no
// path is given on the command line.
const FileName = "radix.toml"

type Config struct {
	Buckets int         `toml:"buckets"`
	Log     LogConfig   `toml:"log"`
	Input   InputConfig `toml:"input"`

	LoadPath string `toml:"-"`
}

type LogConfig struct {
	Level  string `toml:"level"`  // debug, info, warn or error
	Format string `toml:"format"` // text or json
}

// InputConfig names the fields of CIDR records in CSV and JSON input files.
type InputConfig struct {
	CidrKey           string `toml:"cidr_key"`
	PriorityKey       string `toml:"priority_key"`
	PriorityDelimiter string `toml:"priority_delimiter"`
}

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
)

func Default() Config {
	return Config{
		Buckets: radix.DefaultBuckets,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Input: InputConfig{
			CidrKey:           "cidr",
			PriorityKey:       "priority",
			PriorityDelimiter: " ",
		},
	}
}

// Load parses the TOML file at path on top of the defaults. Keys the Config
// does not know about are an error.
func Load(path string) (Config, error) {
	config := Default()
	m, err := toml.DecodeFile(path, &config)
	if err != nil {
		return Config{}, errors.Wrapf(err, "failed to load config %s", path)
	}

	if unknownKeys := m.Undecoded(); len(unknownKeys) > 0 {
		keys := make([]string, 0, len(unknownKeys))
		for _, key := range unknownKeys {
			keys = append(keys, key.String())
		}
		return Config{}, errors.Errorf("unknown keys in config file %s: %s", path, strings.Join(keys, ", "))
	}

	if err := config.Validate(); err != nil {
		return Config{}, errors.Wrapf(err, "invalid config %s", path)
	}
	config.LoadPath = path
	return config, nil
}

func (c Config) Validate() error {
	if c.Buckets < 1 {
		return errors.Wrapf(radix.ErrInvalidBuckets, "buckets = %d", c.Buckets)
	}
	if !slices.Contains(logLevels, strings.ToLower(c.Log.Level)) {
		return errors.Errorf("log.level must be one of %s, got %q", strings.Join(logLevels, ", "), c.Log.Level)
	}
	if !slices.Contains(logFormats, strings.ToLower(c.Log.Format)) {
		return errors.Errorf("log.format must be one of %s, got %q", strings.Join(logFormats, ", "), c.Log.Format)
	}
	if c.Input.CidrKey == "" {
		return errors.New("input.cidr_key must not be empty")
	}
	if c.Input.PriorityDelimiter == "" {
		return errors.New("input.priority_delimiter must not be empty")
	}
	return nil
}

// SlogLevel maps Log.Level to a slog level, info when unknown.
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}
