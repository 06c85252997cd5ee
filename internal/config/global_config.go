// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package config loads and merges the on-disk GlobalConfig with built-in
// defaults. Precedence is CLI flags > config file > defaults; this package
// only resolves the latter two, callers overlay flags afterward.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// GlobalConfig is the root of ~/.translocate/config.yaml.
type GlobalConfig struct {
	Logging     GlobalLoggingConfig `yaml:"logging" json:"logging"`
	Concurrency ConcurrencyConfig   `yaml:"concurrency" json:"concurrency"`
	Provider    ProviderConfig      `yaml:"provider" json:"provider"`
}

// GlobalLoggingConfig controls both the CLI's terminal output and its
// optional JSON file log.
type GlobalLoggingConfig struct {
	Enabled    bool             `yaml:"enabled" json:"enabled"`
	FilePath   string           `yaml:"filePath" json:"filePath"`
	Level      string           `yaml:"level" json:"level"`
	MaxSizeMB  int              `yaml:"maxSizeMB" json:"maxSizeMB"`
	MaxFiles   int              `yaml:"maxFiles" json:"maxFiles"`
	CLILogging CLILoggingConfig `yaml:"cliLogging" json:"cliLogging"`
}

// CLILoggingConfig controls the SimpleLogger's terminal verbosity
// independent of the JSON file logger.
type CLILoggingConfig struct {
	Enabled    bool   `yaml:"enabled" json:"enabled"`
	Level      string `yaml:"level" json:"level"`
	Quiet      bool   `yaml:"quiet" json:"quiet"`
	OnlyErrors bool   `yaml:"onlyErrors" json:"onlyErrors"`
}

// ConcurrencyConfig bounds the worker pool used by the translator and
// evaluator (§4.E) and the threshold past which a mass-translation run
// asks for confirmation (§4.F step 2).
type ConcurrencyConfig struct {
	NumberOfConcurrentTasks   int `yaml:"numberOfConcurrentTasks" json:"numberOfConcurrentTasks"`
	MassTranslationThreshold  int `yaml:"massTranslationThreshold" json:"massTranslationThreshold"`
}

// ProviderConfig names the default translation/evaluation provider's model
// and HTTP endpoint (§4.A, §6).
type ProviderConfig struct {
	Model   string `yaml:"model" json:"model"`
	BaseURL string `yaml:"baseUrl" json:"baseUrl"`
}

// DefaultGlobalConfig returns the built-in defaults applied when no config
// file is present, or to the non-boolean fields left zero-valued in one that
// is (see mergeDefaults).
func DefaultGlobalConfig() *GlobalConfig {
	homeDir, _ := os.UserHomeDir()
	defaultLogPath := filepath.Join(homeDir, ".translocate", "logs", "translocate.log")

	return &GlobalConfig{
		Logging: GlobalLoggingConfig{
			Enabled:   false,
			FilePath:  defaultLogPath,
			Level:     "info",
			MaxSizeMB: 100,
			MaxFiles:  5,
			CLILogging: CLILoggingConfig{
				Enabled: true,
				Level:   "warn",
			},
		},
		Concurrency: ConcurrencyConfig{
			NumberOfConcurrentTasks:  10,
			MassTranslationThreshold: 200,
		},
		Provider: ProviderConfig{
			Model:   "gpt-4o-mini",
			BaseURL: "https://api.openai.com/v1/chat/completions",
		},
	}
}

// LoadGlobalConfig reads ~/.translocate/config.yaml, falling back silently
// to defaults when the file is absent or malformed — a missing config file
// is the common case for a first-run CLI, not an error.
func LoadGlobalConfig() (*GlobalConfig, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return DefaultGlobalConfig(), nil
	}

	configPath := filepath.Join(homeDir, ".translocate", "config.yaml")

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return DefaultGlobalConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return DefaultGlobalConfig(), nil
	}

	var cfg GlobalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultGlobalConfig(), nil
	}

	mergeDefaults(&cfg, DefaultGlobalConfig())

	return &cfg, nil
}

// mergeDefaults fills zero-valued string and integer fields in cfg with
// values from def. Boolean fields are not merged: an omitted one stays false.
func mergeDefaults(cfg, def *GlobalConfig) {
	if cfg.Logging.FilePath == "" {
		cfg.Logging.FilePath = def.Logging.FilePath
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = def.Logging.Level
	}
	if cfg.Logging.MaxSizeMB == 0 {
		cfg.Logging.MaxSizeMB = def.Logging.MaxSizeMB
	}
	if cfg.Logging.MaxFiles == 0 {
		cfg.Logging.MaxFiles = def.Logging.MaxFiles
	}
	if cfg.Logging.CLILogging.Level == "" {
		cfg.Logging.CLILogging.Level = def.Logging.CLILogging.Level
	}
	if cfg.Concurrency.NumberOfConcurrentTasks == 0 {
		cfg.Concurrency.NumberOfConcurrentTasks = def.Concurrency.NumberOfConcurrentTasks
	}
	if cfg.Concurrency.MassTranslationThreshold == 0 {
		cfg.Concurrency.MassTranslationThreshold = def.Concurrency.MassTranslationThreshold
	}
	if cfg.Provider.Model == "" {
		cfg.Provider.Model = def.Provider.Model
	}
	if cfg.Provider.BaseURL == "" {
		cfg.Provider.BaseURL = def.Provider.BaseURL
	}
}
