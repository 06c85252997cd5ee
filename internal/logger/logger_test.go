// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSimpleLoggerShouldLogRespectsGlobalQuiet(t *testing.T) {
	defer SetGlobalLoggingFlags(false, false, false)

	l := NewSimpleLogger("translate")
	SetGlobalLoggingFlags(false, false, true)

	require.True(t, l.shouldLog(SimpleLevelError))
	require.False(t, l.shouldLog(SimpleLevelWarn))
	require.False(t, l.shouldLog(SimpleLevelInfo))
}

func TestSimpleLoggerShouldLogRespectsGlobalDebug(t *testing.T) {
	defer SetGlobalLoggingFlags(false, false, false)

	l := NewSimpleLogger("translate")
	SetGlobalLoggingFlags(false, true, false)

	require.True(t, l.shouldLog(SimpleLevelDebug))
}

func TestWithContextDoesNotMutateOriginal(t *testing.T) {
	base := NewSimpleLogger("translate")
	derived := base.WithContext("locale", "fr")

	require.Empty(t, base.context)
	require.Equal(t, "fr", derived.context["locale"])
}
