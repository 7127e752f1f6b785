package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root of the mbpoll YAML document.
type Config struct {
	Devices []DeviceConfig `yaml:"devices"`
}

// DeviceConfig describes one device and the holding-register blocks to poll
// from it.
type DeviceConfig struct {
	Name      string       `yaml:"name"`
	Address   string       `yaml:"address"`
	UnitID    uint8        `yaml:"unit_id"`
	TimeoutMs int          `yaml:"timeout_ms"`
	Reads     []ReadConfig `yaml:"reads"`
}

// ReadConfig is one read geometry. Counts above the per-message register
// limit are fine; the client chunks them transparently.
type ReadConfig struct {
	Address uint16 `yaml:"address"`
	Count   uint16 `yaml:"count"`
}

func (d DeviceConfig) timeout() time.Duration {
	if d.TimeoutMs <= 0 {
		return time.Second
	}

	return time.Duration(d.TimeoutMs) * time.Millisecond
}

// Load reads and decodes the YAML config at path.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

// Validate rejects configs that cannot be polled.
func Validate(cfg *Config) error {
	if cfg == nil || len(cfg.Devices) == 0 {
		return errors.New("config: at least one device required")
	}

	seen := make(map[string]struct{}, len(cfg.Devices))
	for _, dev := range cfg.Devices {
		if dev.Name == "" {
			return errors.New("config: device name required")
		}
		if _, dup := seen[dev.Name]; dup {
			return fmt.Errorf("config: duplicate device name %q", dev.Name)
		}
		seen[dev.Name] = struct{}{}

		if dev.Address == "" {
			return fmt.Errorf("config: device %q: address required", dev.Name)
		}
		if len(dev.Reads) == 0 {
			return fmt.Errorf("config: device %q: at least one read required", dev.Name)
		}
		for _, rd := range dev.Reads {
			if rd.Count == 0 {
				return fmt.Errorf("config: device %q: read count must be > 0", dev.Name)
			}
		}
	}

	return nil
}
