package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/travigo/connections/pkg/util"
	"gopkg.in/yaml.v3"

	_ "time/tzdata"
)

//go:embed defaults.yaml
var defaultConfig []byte

// Load reads the built in defaults, overlays the YAML file at path (if given) and any
// TRAVIGO_* environment overrides, then validates the result
func Load(path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(defaultConfig, &cfg); err != nil {
		return nil, fmt.Errorf("parse default config: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	applyEnvironment(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyEnvironment(cfg *Config) {
	cfg.Upstream.APIKey = util.GetEnvironmentVariable("TRAVIGO_TFI_API_KEY", cfg.Upstream.APIKey)
	cfg.Upstream.BaseURL = util.GetEnvironmentVariable("TRAVIGO_TFI_BASE_URL", cfg.Upstream.BaseURL)
	cfg.Server.Listen = util.GetEnvironmentVariable("TRAVIGO_LISTEN", cfg.Server.Listen)
}

func Validate(cfg *Config) error {
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return err
	}

	if _, err := time.LoadLocation(cfg.Planner.DisplayTimezone); err != nil {
		return fmt.Errorf("planner.display_timezone: %w", err)
	}

	seen := map[string]bool{}
	for _, direction := range cfg.Directions {
		if seen[direction.Key] {
			return fmt.Errorf("direction %s is defined more than once", direction.Key)
		}
		seen[direction.Key] = true

		if _, err := direction.HorizonDuration(); err != nil {
			return fmt.Errorf("direction %s: horizon %q: %w", direction.Key, direction.Horizon, err)
		}
		if direction.SecondLeg.DefaultDurationMinutes <= 0 {
			return fmt.Errorf("direction %s: second_leg.default_duration_minutes must be positive", direction.Key)
		}
	}

	return nil
}
