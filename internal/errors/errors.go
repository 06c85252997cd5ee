// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package errors defines the error kinds named in the error handling design
// (§7) and a small RecoverableError type for run-aborting setup failures.
package errors

import (
	sterrors "errors"
	"fmt"
)

var (
	// ErrUnhandledFileType means a path's extension does not match a known
	// type (stringCatalog/jsonSpecification). Fatal to the run.
	ErrUnhandledFileType = sterrors.New("unhandled file type")
	// ErrCouldNotSearchDirectory means the file finder failed to walk a
	// directory. Fatal.
	ErrCouldNotSearchDirectory = sterrors.New("could not search directory")
	// ErrNoTranslationReturned means the provider returned no text for a
	// translate call. Retryable, then a per-entry skip.
	ErrNoTranslationReturned = sterrors.New("no translation returned")
	// ErrTranslationFailedLinting means the linter rejected a translation.
	// Retryable, then a per-entry skip.
	ErrTranslationFailedLinting = sterrors.New("translation failed linting")
	// ErrEvaluationNotSupported means the provider does not implement
	// EvaluateQuality. Fatal to review mode only.
	ErrEvaluationNotSupported = sterrors.New("evaluation is not supported by this provider")
	// ErrFileNotFound means a JSON-spec source file is missing during
	// pre-flight. Fatal to that file.
	ErrFileNotFound = sterrors.New("file not found")
	// ErrFailedToParseLocale means a FileLocale or Language identifier could
	// not be parsed. Fatal for the affected spec.
	ErrFailedToParseLocale = sterrors.New("failed to parse locale")
	// ErrFailedToSaveTranslation means a catalog persist failed. Logged, not
	// fatal; the on-disk snapshot may lag in-memory state.
	ErrFailedToSaveTranslation = sterrors.New("failed to save translation")
	// ErrFailedToLoadCatalog means a catalog file could not be read during
	// Load. Fatal to that file.
	ErrFailedToLoadCatalog = sterrors.New("failed to load catalog")
)

// Wrap annotates err with target so errors.Is(result, target) succeeds while
// the original cause remains visible in the error text.
func Wrap(err, target error) error {
	if err == nil {
		return target
	}
	if target == nil {
		return err
	}
	return fmt.Errorf("%w: %w", target, err)
}
