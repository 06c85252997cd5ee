// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadGlobalConfigMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadGlobalConfig()
	require.NoError(t, err)
	require.Equal(t, 10, cfg.Concurrency.NumberOfConcurrentTasks)
	require.Equal(t, 200, cfg.Concurrency.MassTranslationThreshold)
	require.Equal(t, "gpt-4o-mini", cfg.Provider.Model)
}

func TestLoadGlobalConfigMergesPartialFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".translocate")
	require.NoError(t, os.MkdirAll(dir, 0o750))

	yamlContent := "concurrency:\n  numberOfConcurrentTasks: 4\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yamlContent), 0o600))

	cfg, err := LoadGlobalConfig()
	require.NoError(t, err)
	require.Equal(t, 4, cfg.Concurrency.NumberOfConcurrentTasks)
	// Untouched fields still fall back to defaults.
	require.Equal(t, 200, cfg.Concurrency.MassTranslationThreshold)
	require.Equal(t, "https://api.openai.com/v1/chat/completions", cfg.Provider.BaseURL)
}
