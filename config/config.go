// Package config aggregates the per-package configuration blocks into the one
// JSON document the CLI consumes.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/solbuf-labs/solship/chain"
	"github.com/solbuf-labs/solship/engine"
	"github.com/solbuf-labs/solship/shard"
	"github.com/solbuf-labs/solship/tx"
)

// Config is the full runtime configuration for one transmission.
type Config struct {
	Chain    chain.Config          `json:"chain"`
	Engine   engine.Config         `json:"engine"`
	Profile  shard.OverheadProfile `json:"profile"`
	Priority tx.PriorityConfig     `json:"priority"`
}

// DefaultConfig returns a config with every field at its default.
func DefaultConfig() Config {
	var c Config
	c.SetDefaults()
	return c
}

// SetDefaults sets default values for unset fields
func (c *Config) SetDefaults() {
	c.Chain.SetDefaults()
	c.Engine.SetDefaults()
	c.Profile.SetDefaults()
}

func (c Config) Validate() error {
	if err := c.Chain.Validate(); err != nil {
		return fmt.Errorf("chain: %w", err)
	}
	if err := c.Engine.Validate(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	// The overhead profile is validated by the engine once the priority
	// directives' dynamic prefix is known.
	return nil
}

// Load reads, defaults and validates a JSON config file.
func Load(path string) (Config, error) {
	bz, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	var c Config
	if err := json.Unmarshal(bz, &c); err != nil {
		return Config{}, fmt.Errorf("json unmarshal: %w", err)
	}
	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
