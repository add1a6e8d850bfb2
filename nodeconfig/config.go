// Package nodeconfig holds the node's local configuration: where it stores
// its chain and keystore, how it logs, and how it mines. There is no
// network configuration here — this core has no peer-to-peer layer.
package nodeconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config is the node's local configuration.
type Config struct {
	DataDir   string `json:"data_dir"`
	LogLevel  string `json:"log_level"`
	Parallel  bool   `json:"parallel_mining"`
	MiningBit uint32 `json:"mining_bits"` // compact-target difficulty used by the mine subcommand
}

var allowedLogLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

// DefaultDataDir returns the user's home-directory-relative default data
// directory.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".btcgo"
	}
	return filepath.Join(home, ".btcgo")
}

// DefaultConfig returns the node's default configuration: easiest possible
// mining target, info-level logging, scalar mining.
func DefaultConfig() Config {
	return Config{
		DataDir:   DefaultDataDir(),
		LogLevel:  "info",
		Parallel:  false,
		MiningBit: 0x20ffffff,
	}
}

// Validate checks the configuration's required fields and allowed values.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.DataDir) == "" {
		return errors.New("data_dir is required")
	}
	logLevel := strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if _, ok := allowedLogLevels[logLevel]; !ok {
		return fmt.Errorf("invalid log_level %q", cfg.LogLevel)
	}
	if cfg.MiningBit == 0 {
		return errors.New("mining_bits must be non-zero")
	}
	return nil
}

// KeystorePath returns the path to this config's keystore file.
func (cfg Config) KeystorePath() string {
	return filepath.Join(cfg.DataDir, "keystore.json")
}
