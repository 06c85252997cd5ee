// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package errors

import (
	sterrors "errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapPreservesIsChecks(t *testing.T) {
	cause := sterrors.New("boom")
	wrapped := Wrap(cause, ErrFileNotFound)

	require.ErrorIs(t, wrapped, ErrFileNotFound)
	require.ErrorIs(t, wrapped, cause)
}

func TestWrapNilArguments(t *testing.T) {
	require.Equal(t, ErrFileNotFound, Wrap(nil, ErrFileNotFound))
	require.Nil(t, Wrap(nil, nil))

	cause := sterrors.New("boom")
	require.Equal(t, cause, Wrap(cause, nil))
}

func TestRecoverableErrorContext(t *testing.T) {
	err := NewRecoverableError(ErrorTypeIO, "load failed", sterrors.New("disk error")).
		WithContext("path", "catalog.xcstrings")

	require.Contains(t, err.Error(), "load failed")
	require.Contains(t, err.Error(), "disk error")
	require.Equal(t, "catalog.xcstrings", err.Context["path"])
	require.ErrorIs(t, err, err.Cause)
}
