// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Survey SurveyConfig `toml:"survey"`
	Report ReportConfig `toml:"report"`
}

// SurveyConfig maps evaluation-form settings.
type SurveyConfig struct {
	Roster            []string `toml:"roster"`
	SingleFacilitator *bool    `toml:"single-facilitator"`
}

// ReportConfig maps dashboard and report settings.
type ReportConfig struct {
	Expand *bool   `toml:"expand"`
	Chart  *string `toml:"chart"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
