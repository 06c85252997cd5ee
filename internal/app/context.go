// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package app wires together the dependencies shared by every cmd/
// subcommand, grounded on the teacher's internal/app/context.go.
package app

import (
	"github.com/archmagece/translocate/internal/config"
	"github.com/archmagece/translocate/internal/logger"
	"github.com/archmagece/translocate/internal/provider"
)

// Context holds application-wide dependencies, assembled by New once per
// subcommand run (each cmd/ subcommand calls New from its RunE).
type Context struct {
	Logger   logger.CommonLogger
	Config   *config.GlobalConfig
	Provider provider.Provider
}

// New loads the global config, builds the OpenAI-compatible provider from
// it, and wraps both in a Context. component names the logger's component
// field ("translate", "translate-text", "review").
//
// The JSON file log (cfg.Logging.Enabled) only the StructuredLogger can
// produce, so it forces that implementation regardless of CLILogging.
// Otherwise cfg.Logging.CLILogging.Enabled selects the plain colorized
// SimpleLogger for interactive terminal use; when neither applies the
// slog-based StructuredLogger is used for console output too.
func New(component string) (*Context, error) {
	cfg, err := config.LoadGlobalConfig()
	if err != nil {
		return nil, err
	}

	var log logger.CommonLogger
	if cfg.Logging.CLILogging.Enabled && !cfg.Logging.Enabled {
		log = logger.NewSimpleLogger(component)
	} else {
		level := logger.LevelInfo
		if cfg.Logging.Level != "" {
			level = logger.LogLevel(cfg.Logging.Level)
		}
		log = logger.NewStructuredLogger(component, level)
	}

	p := provider.NewOpenAIProvider(cfg.Provider.BaseURL, cfg.Provider.Model)

	return &Context{Logger: log, Config: cfg, Provider: p}, nil
}
