package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the global application configuration
var Config AppConfig

// SearchPaths are tried in order by LoadAppConfig.
var SearchPaths = []string{"itinerary-filter.yml", "config.yml"}

// Environment variables overriding the file.
const (
	EnvSource           = "ITINERARY_SOURCE"
	EnvFormat           = "ITINERARY_FORMAT"
	EnvWorkers          = "ITINERARY_WORKERS"
	EnvMaxGroundMinutes = "ITINERARY_MAX_GROUND_MINUTES"
	EnvDepartAfter      = "ITINERARY_DEPART_AFTER"
)

// LoadAppConfig loads the first config file found in SearchPaths, applies
// .env and environment overrides, validates it and stores it in Config.
// Without a config file the defaults are used.
func LoadAppConfig() error {
	var data []byte
	for _, p := range SearchPaths {
		b, err := os.ReadFile(p)
		if err == nil {
			data = b
			break
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	env, err := Environment(".env")
	if err != nil {
		return err
	}
	cfg, err := Parse(data, env)
	if err != nil {
		return err
	}
	Config = cfg
	return nil
}

// Load reads and validates a single config file. An empty path yields the
// defaults. Overrides come from env only.
func Load(path string, env map[string]string) (AppConfig, error) {
	var data []byte
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return AppConfig{}, err
		}
		data = b
	}
	return Parse(data, env)
}

// Parse decodes YAML, applies overrides and defaults, and validates.
func Parse(data []byte, env map[string]string) (AppConfig, error) {
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("parse config: %w", err)
	}
	if err := applyEnv(&cfg, env); err != nil {
		return AppConfig{}, err
	}
	applyDefaults(&cfg)
	v, err := newValidator()
	if err != nil {
		return AppConfig{}, err
	}
	if err := v.Struct(cfg); err != nil {
		return AppConfig{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// Environment merges the given .env file (if present) with the process
// environment. Process variables win.
func Environment(dotenv string) (map[string]string, error) {
	env := map[string]string{}
	if dotenv != "" {
		m, err := godotenv.Read(dotenv)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", dotenv, err)
		}
		for k, v := range m {
			env[k] = v
		}
	}
	for _, k := range []string{EnvSource, EnvFormat, EnvWorkers, EnvMaxGroundMinutes, EnvDepartAfter} {
		if v, ok := os.LookupEnv(k); ok {
			env[k] = v
		}
	}
	return env, nil
}

func applyEnv(cfg *AppConfig, env map[string]string) error {
	if v := env[EnvSource]; v != "" {
		cfg.Source.Kind = v
	}
	if v := env[EnvFormat]; v != "" {
		cfg.Output.Format = v
	}
	if v := env[EnvDepartAfter]; v != "" {
		cfg.Filter.DepartAfter = v
	}
	if v := env[EnvWorkers]; v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvWorkers, err)
		}
		cfg.Filter.Workers = n
	}
	if v := env[EnvMaxGroundMinutes]; v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMaxGroundMinutes, err)
		}
		cfg.Filter.MaxGroundMinutes = n
	}
	return nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Source.Kind == "" {
		cfg.Source.Kind = SourceSample
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = "text"
	}
	for i := range cfg.Feeds {
		if cfg.Feeds[i].Source.Kind == "" {
			cfg.Feeds[i].Source.Kind = SourceSample
		}
	}
}

func newValidator() (*validator.Validate, error) {
	v := validator.New()
	err := v.RegisterValidation("departafter", func(fl validator.FieldLevel) bool {
		_, err := ParseDepartAfter(fl.Field().String(), time.Now())
		return err == nil
	})
	if err != nil {
		return nil, fmt.Errorf("register departafter validation: %w", err)
	}
	return v, nil
}

// ParseDepartAfter resolves "now", "now+<duration>", "now-<duration>" or an
// RFC3339 timestamp against now. An empty value returns the zero time.
func ParseDepartAfter(v string, now time.Time) (time.Time, error) {
	v = strings.TrimSpace(v)
	switch {
	case v == "":
		return time.Time{}, nil
	case v == "now":
		return now, nil
	case strings.HasPrefix(v, "now+"), strings.HasPrefix(v, "now-"):
		d, err := time.ParseDuration(v[3:])
		if err != nil {
			return time.Time{}, fmt.Errorf("departAfter %q: %w", v, err)
		}
		return now.Add(d), nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("departAfter %q: %w", v, err)
	}
	return t, nil
}

// SelectFeed chooses a feed source by name; fallback to first; if none, use
// the top-level source.
func SelectFeed(name string) SourceConfig {
	return Config.SelectFeed(name)
}

// SelectFeed chooses a feed source by name on cfg.
func (cfg AppConfig) SelectFeed(name string) SourceConfig {
	if name != "" {
		for _, f := range cfg.Feeds {
			if f.Name == name {
				return f.Source
			}
		}
	}
	if len(cfg.Feeds) > 0 {
		return cfg.Feeds[0].Source
	}
	return cfg.Source
}
