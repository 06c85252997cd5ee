// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package language wraps golang.org/x/text/language into the opaque locale
// identifier the catalog and JSON-spec drivers key their maps on (§3).
package language

import (
	"golang.org/x/text/language"

	apperrors "github.com/archmagece/translocate/internal/errors"
)

// Language is an opaque locale identifier ("en", "fr-CA", ...). Two
// Languages compare equal iff their identifiers match — BCP 47
// canonicalization is intentionally NOT applied here, since the catalog and
// JSON-spec formats key their maps on the literal code string and a
// canonicalizing comparison could silently merge two distinct map entries.
type Language struct {
	code string
}

// Parse validates code as a BCP 47 tag and returns the Language wrapping its
// literal form. Returns ErrFailedToParseLocale if code is not a well-formed
// tag.
func Parse(code string) (Language, error) {
	if code == "" {
		return Language{}, apperrors.Wrap(nil, apperrors.ErrFailedToParseLocale)
	}
	if _, err := language.Parse(code); err != nil {
		return Language{}, apperrors.Wrap(err, apperrors.ErrFailedToParseLocale)
	}
	return Language{code: code}, nil
}

// MustParse is Parse but panics on error; for literals known at compile time.
func MustParse(code string) Language {
	l, err := Parse(code)
	if err != nil {
		panic(err)
	}
	return l
}

// Code returns the literal identifier, e.g. for use as a map key or for
// rendering in CLI output.
func (l Language) Code() string { return l.code }

// Equal reports whether two Languages share the same identifier.
func (l Language) Equal(other Language) bool { return l.code == other.code }

// IsZero reports whether l is the zero Language (unset).
func (l Language) IsZero() bool { return l.code == "" }

func (l Language) String() string { return l.code }
