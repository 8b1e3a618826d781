package config

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config carries the node-level settings. Everything else (metadata
// bounds, wire codes) is fixed by the contract and not configurable.
type Config struct {
	DataDir      string `toml:"DataDir"`
	GenesisAdmin string `toml:"GenesisAdmin"`
	MaxSupply    string `toml:"MaxSupply"`
	ServiceName  string `toml:"ServiceName"`
	Environment  string `toml:"Environment"`
}

// Default returns the committed defaults: an in-memory data dir marker, no
// supply cap override, and a local service identity. GenesisAdmin has no
// default; it must be set for a fresh database.
func Default() *Config {
	return &Config{
		DataDir:     "",
		ServiceName: "eduledger",
		Environment: "local",
	}
}

// Load reads the configuration from the given path. A missing file yields
// the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the admin address and supply cap formats.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.GenesisAdmin) != "" {
		if _, err := c.AdminAddress(); err != nil {
			return err
		}
	}
	if strings.TrimSpace(c.MaxSupply) != "" {
		if _, err := c.MaxSupplyBig(); err != nil {
			return err
		}
	}
	return nil
}

// AdminAddress parses GenesisAdmin as a 0x-prefixed 20-byte hex address.
func (c *Config) AdminAddress() ([20]byte, error) {
	var addr [20]byte
	trimmed := strings.TrimSpace(c.GenesisAdmin)
	trimmed = strings.TrimPrefix(trimmed, "0x")
	raw, err := hex.DecodeString(trimmed)
	if err != nil {
		return addr, fmt.Errorf("config: invalid GenesisAdmin: %w", err)
	}
	if len(raw) != len(addr) {
		return addr, fmt.Errorf("config: GenesisAdmin must be %d bytes, got %d", len(addr), len(raw))
	}
	copy(addr[:], raw)
	return addr, nil
}

// MaxSupplyBig parses MaxSupply as a positive decimal integer. An empty
// value returns nil, meaning the engine default applies.
func (c *Config) MaxSupplyBig() (*big.Int, error) {
	trimmed := strings.TrimSpace(c.MaxSupply)
	if trimmed == "" {
		return nil, nil
	}
	value, ok := new(big.Int).SetString(trimmed, 10)
	if !ok {
		return nil, fmt.Errorf("config: invalid MaxSupply: %s", c.MaxSupply)
	}
	if value.Sign() <= 0 {
		return nil, fmt.Errorf("config: MaxSupply must be positive")
	}
	return value, nil
}
