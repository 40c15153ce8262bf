// Package config loads the vpet YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"vpet/internal/pet"
)

// DefaultFileName is looked up in the state directory when no -config flag
// is given.
const DefaultFileName = "config.yaml"

// Config holds every tunable of the game.
type Config struct {
	// StateDir holds the saved roster and the log file. A leading ~ is
	// expanded to the home directory.
	StateDir string `yaml:"state_dir"`

	// DecayInterval is how often every pet loses stats.
	DecayInterval time.Duration `yaml:"decay_interval"`

	// Cooldown is the minimum time between two uses of the same action on
	// the same pet.
	Cooldown time.Duration `yaml:"cooldown"`

	// DeathDelay is how long a dead pet stays on screen before removal.
	DeathDelay time.Duration `yaml:"death_delay"`

	// Sound rings the terminal bell on sound cues.
	Sound bool `yaml:"sound"`

	// MetricsTextfile, when set, is rewritten with the roster's stats in the
	// Prometheus text format after every change.
	MetricsTextfile string `yaml:"metrics_textfile"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		StateDir:      filepath.Join("~", ".config", "vpet"),
		DecayInterval: pet.DefaultDecayInterval,
		Cooldown:      pet.DefaultCooldown,
		DeathDelay:    pet.DefaultDeathDelay,
		Sound:         true,
	}
}

// Load reads and parses the YAML config file at path. A missing file yields
// the defaults; absent fields keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, cfg.expand()
	}
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, cfg.expand()
}

// validate checks structural constraints.
func validate(cfg *Config) error {
	if cfg.DecayInterval <= 0 {
		return fmt.Errorf("decay_interval must be positive, got %v", cfg.DecayInterval)
	}
	if cfg.Cooldown <= 0 {
		return fmt.Errorf("cooldown must be positive, got %v", cfg.Cooldown)
	}
	if cfg.DeathDelay <= 0 {
		return fmt.Errorf("death_delay must be positive, got %v", cfg.DeathDelay)
	}
	if strings.TrimSpace(cfg.StateDir) == "" {
		return fmt.Errorf("state_dir is required")
	}
	return nil
}

// expand resolves ~ in path fields.
func (c *Config) expand() error {
	for _, p := range []*string{&c.StateDir, &c.MetricsTextfile} {
		if *p != "~" && !strings.HasPrefix(*p, "~/") {
			continue
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("config: home dir: %w", err)
		}
		*p = filepath.Join(home, strings.TrimPrefix(*p, "~"))
	}
	return nil
}

// LogPath returns the file the game logs to
func (c *Config) LogPath() string {
	return filepath.Join(c.StateDir, "vpet.log")
}
