// Package config loads switchboard configuration with layered precedence:
// built-in defaults, then a YAML file, then SWITCHBOARD_* environment
// variables. Env keys map underscores to key names and double underscores to
// nesting: SWITCHBOARD_ADMIN__LISTEN sets admin.listen.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "SWITCHBOARD_"

// Admin configures the operations HTTP server.
type Admin struct {
	Enabled bool   `koanf:"enabled"`
	Listen  string `koanf:"listen"`
}

// Redis configures call record persistence.
type Redis struct {
	Enabled  bool          `koanf:"enabled"`
	Address  string        `koanf:"address"`
	Password string        `koanf:"password"`
	DB       int           `koanf:"db"`
	TTL      time.Duration `koanf:"ttl"`
}

// Config is the whole switchboard configuration.
type Config struct {
	System         string        `koanf:"system"`    // registry ID, or "boot" for the boot menu
	TreeFile       string        `koanf:"tree_file"` // YAML tree; overrides system when set
	LogLevel       string        `koanf:"log_level"`
	LogFile        string        `koanf:"log_file"` // empty logs to stderr
	DialTone       time.Duration `koanf:"dial_tone"`
	PromptDuration time.Duration `koanf:"prompt_duration"` // simulated console playback
	Admin          Admin         `koanf:"admin"`
	Redis          Redis         `koanf:"redis"`
}

var defaults = []byte(`
system: info-booth
log_level: info
dial_tone: 1s
prompt_duration: 2s
admin:
  enabled: false
  listen: :8080
redis:
  enabled: false
  address: localhost:6379
  db: 0
  ttl: 720h
`)

// Load builds the configuration. path may be empty to skip the file layer;
// a named file that does not exist is an error.
func Load(path string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider(defaults), yaml.Parser()); err != nil {
		return Config{}, fmt.Errorf("loading defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
		if err := k.Load(rawbytes.Provider(data), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return Config{}, fmt.Errorf("loading environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshaling config: %w", err)
	}
	return cfg, nil
}
