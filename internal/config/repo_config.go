// Package config provides repository configuration management,
// including reading and writing the devpr configuration file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultParent is the parent branch used when none is configured or given
const DefaultParent = "master"

const configFileName = ".devpr_config"

// RepoConfig represents the repository configuration
type RepoConfig struct {
	Parent *string `json:"parent,omitempty"`
}

func configPath(repoRoot string) string {
	return filepath.Join(repoRoot, ".git", configFileName)
}

// GetRepoConfig reads the repository configuration
func GetRepoConfig(repoRoot string) (*RepoConfig, error) {
	data, err := os.ReadFile(configPath(repoRoot))
	if err != nil {
		// Config doesn't exist - return default
		return &RepoConfig{}, nil
	}

	var config RepoConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse repo config: %w", err)
	}

	return &config, nil
}

// GetParent returns the configured parent branch, or DefaultParent
func GetParent(repoRoot string) (string, error) {
	config, err := GetRepoConfig(repoRoot)
	if err != nil {
		return "", err
	}

	if config.Parent != nil && *config.Parent != "" {
		return *config.Parent, nil
	}

	return DefaultParent, nil
}

// SetParent writes the default parent branch to the repo config
func SetParent(repoRoot string, parent string) error {
	config, err := GetRepoConfig(repoRoot)
	if err != nil {
		config = &RepoConfig{}
	}

	config.Parent = &parent

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode repo config: %w", err)
	}

	if err := os.WriteFile(configPath(repoRoot), data, 0o644); err != nil {
		return fmt.Errorf("failed to write repo config: %w", err)
	}
	return nil
}
