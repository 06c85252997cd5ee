// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package translator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/archmagece/translocate/internal/catalog"
	"github.com/archmagece/translocate/internal/language"
	"github.com/stretchr/testify/require"
)

// fakeProvider is a hand-written stub; real components are tested against
// fakes, never the HTTP-backed provider (§10.5).
type fakeProvider struct {
	translate func(text string, source, target language.Language) (string, error)
}

func (f *fakeProvider) Translate(_ context.Context, text string, source, target language.Language, _ string) (string, error) {
	return f.translate(text, source, target)
}

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "f.xcstrings")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const oneEntryDoc = `{"sourceLanguage":"en","strings":{"Hello":{"localizations":{"fr":{"stringUnit":{"state":"new","value":""}}}}}}`

func TestTranslateFileS1SingleStringOneTarget(t *testing.T) {
	path := writeCatalog(t, oneEntryDoc)

	p := &fakeProvider{translate: func(text string, source, target language.Language) (string, error) {
		return "Bonjour", nil
	}}

	tr := New(p, nil, Options{Overwrite: true, SkipConfirm: true})
	count, err := tr.TranslateFile(context.Background(), path, nil)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	reloaded, err := catalog.Load(path, nil)
	require.NoError(t, err)
	group, _ := reloaded.Group("Hello")
	fr, _ := group.String(language.MustParse("fr"))
	require.Equal(t, catalog.StateTranslated, fr.State)
	require.Equal(t, "Bonjour", *fr.TranslatedValue)
}

func TestTranslateFileS2OverwriteOffWritesSidecar(t *testing.T) {
	path := writeCatalog(t, oneEntryDoc)
	original, err := os.ReadFile(path)
	require.NoError(t, err)

	p := &fakeProvider{translate: func(text string, source, target language.Language) (string, error) {
		return "Bonjour", nil
	}}

	tr := New(p, nil, Options{Overwrite: false, SkipConfirm: true})
	count, err := tr.TranslateFile(context.Background(), path, nil)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	stillOriginal, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, original, stillOriginal)

	sidecarPath := filepath.Join(filepath.Dir(path), "f.loc.xcstrings")
	sidecar, err := catalog.Load(sidecarPath, nil)
	require.NoError(t, err)
	group, _ := sidecar.Group("Hello")
	fr, _ := group.String(language.MustParse("fr"))
	require.Equal(t, "Bonjour", *fr.TranslatedValue)
}

func TestTranslateFileS3MassTranslationConfirmationDeclined(t *testing.T) {
	targets := []string{"fr", "de", "es", "it", "ja", "ko", "pt", "ru", "zh", "nl"}
	keys := ""
	for i := 0; i < 21; i++ {
		if i > 0 {
			keys += ","
		}
		locs := ""
		for j, code := range targets {
			if j > 0 {
				locs += ","
			}
			locs += fmt.Sprintf(`"%s":{"stringUnit":{"state":"new","value":""}}`, code)
		}
		keys += fmt.Sprintf(`"key%d":{"localizations":{%s}}`, i, locs)
	}
	doc := fmt.Sprintf(`{"sourceLanguage":"en","strings":{%s}}`, keys)
	path := writeCatalog(t, doc)
	original, err := os.ReadFile(path)
	require.NoError(t, err)

	p := &fakeProvider{translate: func(text string, source, target language.Language) (string, error) {
		return "x", nil
	}}

	tr := New(p, nil, Options{Overwrite: true})
	tr.Confirm = func(label string) (bool, error) { return false, nil }

	count, err := tr.TranslateFile(context.Background(), path, nil)
	require.ErrorIs(t, err, ErrCanceled)
	require.Equal(t, 0, count)

	unchanged, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, original, unchanged)
}

func TestTranslateFileS4RetryThenSucceed(t *testing.T) {
	path := writeCatalog(t, oneEntryDoc)

	var attempts int32
	p := &fakeProvider{translate: func(text string, source, target language.Language) (string, error) {
		if atomic.AddInt32(&attempts, 1) == 1 {
			return "", fmt.Errorf("transport error")
		}
		return "Bonjour", nil
	}}

	tr := New(p, nil, Options{Overwrite: true, SkipConfirm: true})
	count, err := tr.TranslateFile(context.Background(), path, nil)
	require.NoError(t, err)
	require.Equal(t, 1, count)
	require.Equal(t, int32(2), atomic.LoadInt32(&attempts))
}

func TestTranslateFileS5LintRejectionSkipsAfterOneRetry(t *testing.T) {
	doc := `{"sourceLanguage":"en","strings":{"Hello %@":{"localizations":{"fr":{"stringUnit":{"state":"new","value":""}}}}}}`
	path := writeCatalog(t, doc)

	var attempts int32
	p := &fakeProvider{translate: func(text string, source, target language.Language) (string, error) {
		atomic.AddInt32(&attempts, 1)
		return "Bonjour", nil // always drops the %@ specifier
	}}

	tr := New(p, nil, Options{Overwrite: true, SkipConfirm: true})
	count, err := tr.TranslateFile(context.Background(), path, nil)
	require.NoError(t, err)
	require.Equal(t, 0, count)
	require.Equal(t, int32(2), atomic.LoadInt32(&attempts))

	reloaded, err := catalog.Load(path, nil)
	require.NoError(t, err)
	group, _ := reloaded.Group("Hello %@")
	fr, _ := group.String(language.MustParse("fr"))
	require.Equal(t, catalog.StateNew, fr.State)
}

func TestTranslateFileLoadErrorPropagates(t *testing.T) {
	path := writeCatalog(t, `not json`)

	p := &fakeProvider{translate: func(text string, source, target language.Language) (string, error) {
		return "x", nil
	}}

	tr := New(p, nil, Options{Overwrite: true, SkipConfirm: true})
	_, err := tr.TranslateFile(context.Background(), path, nil)
	require.Error(t, err)
}
