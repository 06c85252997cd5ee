// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package evaluator

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/archmagece/translocate/internal/catalog"
	apperrors "github.com/archmagece/translocate/internal/errors"
	"github.com/archmagece/translocate/internal/language"
	"github.com/archmagece/translocate/internal/provider"
	"github.com/stretchr/testify/require"
)

type translateOnlyFake struct{}

func (translateOnlyFake) Translate(context.Context, string, language.Language, language.Language, string) (string, error) {
	return "", nil
}

type evaluatingFake struct {
	verdict provider.Quality
}

func (evaluatingFake) Translate(context.Context, string, language.Language, language.Language, string) (string, error) {
	return "", nil
}

func (f evaluatingFake) EvaluateQuality(context.Context, string, string, language.Language, string) (provider.EvaluationResult, error) {
	return provider.EvaluationResult{Quality: f.verdict}, nil
}

func TestNewRejectsProviderWithoutEvaluateQuality(t *testing.T) {
	_, err := New(translateOnlyFake{}, nil, Options{})
	require.ErrorIs(t, err, apperrors.ErrEvaluationNotSupported)
}

func TestReviewFileS7ApprovedFlipsState(t *testing.T) {
	doc := `{"sourceLanguage":"en","strings":{"Hello":{"localizations":{"fr":{"stringUnit":{"state":"needs_review","value":"Bonjour"}}}}}}`

	dir := t.TempDir()
	path := filepath.Join(dir, "f.xcstrings")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	ev, err := New(evaluatingFake{verdict: provider.QualityGood}, nil, Options{Overwrite: true})
	require.NoError(t, err)

	count, err := ev.ReviewFile(context.Background(), path, nil)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	reloaded, err := catalog.Load(path, nil)
	require.NoError(t, err)
	group, _ := reloaded.Group("Hello")
	fr, _ := group.String(language.MustParse("fr"))
	require.Equal(t, catalog.StateTranslated, fr.State)
}

func TestReviewFileRejectedKeepsNeedsReview(t *testing.T) {
	doc := `{"sourceLanguage":"en","strings":{"Hello":{"localizations":{"fr":{"stringUnit":{"state":"needs_review","value":"Bonjour"}}}}}}`

	dir := t.TempDir()
	path := filepath.Join(dir, "f.xcstrings")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	ev, err := New(evaluatingFake{verdict: provider.QualityPoor}, nil, Options{Overwrite: true})
	require.NoError(t, err)

	count, err := ev.ReviewFile(context.Background(), path, nil)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	reloaded, err := catalog.Load(path, nil)
	require.NoError(t, err)
	group, _ := reloaded.Group("Hello")
	fr, _ := group.String(language.MustParse("fr"))
	require.Equal(t, catalog.StateNeedsReview, fr.State)
}

func TestReviewFileSkipsNonNeedsReviewEntries(t *testing.T) {
	doc := `{"sourceLanguage":"en","strings":{"Hello":{"localizations":{"fr":{"stringUnit":{"state":"new","value":""}}}}}}`

	dir := t.TempDir()
	path := filepath.Join(dir, "f.xcstrings")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	ev, err := New(evaluatingFake{verdict: provider.QualityGood}, nil, Options{Overwrite: true})
	require.NoError(t, err)

	count, err := ev.ReviewFile(context.Background(), path, nil)
	require.NoError(t, err)
	require.Equal(t, 0, count)
}
