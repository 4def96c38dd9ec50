package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds CLI defaults loaded from a TOML file.
type Config struct {
	Port       string `toml:"port"`
	Baud       int    `toml:"baud"`
	MaxPayload int    `toml:"max_payload"`
	DelayMS    int    `toml:"delay_ms"`
}

// Delay returns the inter-frame delay.
func (c Config) Delay() time.Duration {
	return time.Duration(c.DelayMS) * time.Millisecond
}

// Load decodes path. Unknown keys are rejected so typos surface early.
func Load(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func Validate(cfg Config) error {
	if cfg.Baud < 0 {
		return errors.New("baud must not be negative")
	}
	if cfg.MaxPayload < 0 {
		return errors.New("max_payload must not be negative")
	}
	if cfg.DelayMS < 0 {
		return errors.New("delay_ms must not be negative")
	}
	return nil
}
