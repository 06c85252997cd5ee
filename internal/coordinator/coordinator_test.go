// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package coordinator

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

type fakeProvider struct {
	translate func(text string, source, target language.Language) (string, error)
	evaluate  func() (provider.EvaluationResult, error)
}

func (f *fakeProvider) Translate(_ context.Context, text string, source, target language.Language, _ string) (string, error) {
	return f.translate(text, source, target)
}

func (f *fakeProvider) EvaluateQuality(_ context.Context, source, translation string, target language.Language, comment string) (provider.EvaluationResult, error) {
	return f.evaluate()
}

func TestTranslateTextPrintsOneLinePerTarget(t *testing.T) {
	p := &fakeProvider{translate: func(text string, source, target language.Language) (string, error) {
		return text + "-" + target.Code(), nil
	}}

	c := New(p, nil)
	err := c.TranslateText(context.Background(), "Hello", []language.Language{language.MustParse("fr"), language.MustParse("de")})
	require.NoError(t, err)
}

func TestTranslateFilesDispatchesCatalogTranslator(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.xcstrings")
	doc := `{"sourceLanguage":"en","strings":{"Hello":{"localizations":{"fr":{"stringUnit":{"state":"new","value":""}}}}}}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	p := &fakeProvider{translate: func(text string, source, target language.Language) (string, error) {
		return "Bonjour", nil
	}}

	c := New(p, nil)
	err := c.TranslateFiles(context.Background(), TranslateFilesOptions{
		Path:        path,
		Overwrite:   true,
		SkipConfirm: true,
		Concurrency: 2,
	})
	require.NoError(t, err)

	reloaded, err := catalog.Load(path, nil)
	require.NoError(t, err)
	group, _ := reloaded.Group("Hello")
	fr, _ := group.String(language.MustParse("fr"))
	require.Equal(t, catalog.StateTranslated, fr.State)
}

func TestReviewFilesFailsFastWithoutEvaluateQuality(t *testing.T) {
	c := New(translateOnly{}, nil)
	err := c.ReviewFiles(context.Background(), ReviewFilesOptions{Path: t.TempDir()})
	require.Error(t, err)

	var re *apperrors.RecoverableError
	require.ErrorAs(t, err, &re)
	require.Equal(t, apperrors.ErrorTypeProvider, re.Type)
}

func TestTranslateFilesClassifiesEnumerateFailureAsIO(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.unknown")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	p := &fakeProvider{}
	c := New(p, nil)

	err := c.TranslateFiles(context.Background(), TranslateFilesOptions{Path: path})
	require.Error(t, err)

	var re *apperrors.RecoverableError
	require.ErrorAs(t, err, &re)
	require.Equal(t, apperrors.ErrorTypeIO, re.Type)
}

type translateOnly struct{}

func (translateOnly) Translate(context.Context, string, language.Language, language.Language, string) (string, error) {
	return "", nil
}
