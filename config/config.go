package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config is the root configuration structure.
type Config struct {
	Log       LogConfig       `json:"log"`
	Discovery DiscoveryConfig `json:"discovery"`
	Filters   FilterConfig    `json:"filters"`
}

// LogConfig controls the final git log invocation.
type LogConfig struct {
	Format    string   `json:"format"`    // --format value
	ExtraArgs []string `json:"extraArgs"` // appended before the revision args
}

// DiscoveryConfig controls how interesting commits are found.
type DiscoveryConfig struct {
	IncludeRemotes   bool   `json:"includeRemotes"`   // matching remote branches
	IncludeUpstreams bool   `json:"includeUpstreams"` // tracking refs of local branches
	Strategy         string `json:"strategy"`         // "stream" or "explore"
}

// Strategy names for DiscoveryConfig.Strategy.
const (
	StrategyStream  = "stream"
	StrategyExplore = "explore"
)

// FilterConfig holds branch name filtering options (doublestar globs over
// branch short names).
type FilterConfig struct {
	Include []string `json:"include"`
	Exclude []string `json:"exclude"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Format: `%C(auto)%h %d %<(50,trunc)%s`,
		},
		Discovery: DiscoveryConfig{
			IncludeRemotes:   true,
			IncludeUpstreams: true,
			Strategy:         StrategyStream,
		},
		Filters: FilterConfig{
			Include: []string{},
			Exclude: []string{},
		},
	}
}

// LoadConfig loads configuration from a file, merging with defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		// Try default locations
		candidates := []string{".gittree.json"}
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			candidates = append(candidates, filepath.Join(home, ".gittree.json"))
		} else if envHome := os.Getenv("HOME"); envHome != "" {
			candidates = append(candidates, filepath.Join(envHome, ".gittree.json"))
		}
		for _, p := range candidates {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveConfig saves configuration to a file.
func SaveConfig(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
