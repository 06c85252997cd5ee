// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package language

import (
	"testing"

	apperrors "github.com/archmagece/translocate/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestParseValidCodes(t *testing.T) {
	for _, code := range []string{"en", "fr-CA", "ko", "ja-JP"} {
		l, err := Parse(code)
		require.NoError(t, err)
		require.Equal(t, code, l.Code())
	}
}

func TestParseInvalidCode(t *testing.T) {
	_, err := Parse("not a locale!!")
	require.ErrorIs(t, err, apperrors.ErrFailedToParseLocale)
}

func TestParseEmptyCode(t *testing.T) {
	_, err := Parse("")
	require.ErrorIs(t, err, apperrors.ErrFailedToParseLocale)
}

func TestEqualComparesLiteralCode(t *testing.T) {
	a := MustParse("fr-CA")
	b := MustParse("fr-CA")
	c := MustParse("fr")

	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
}
