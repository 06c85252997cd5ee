// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/archmagece/translocate/internal/language"
	"github.com/stretchr/testify/require"
)

const singleStringDoc = `{"sourceLanguage":"en","strings":{"Hello":{"localizations":{"fr":{"stringUnit":{"state":"new","value":""}}}}}}`

func writeTempCatalog(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "f.xcstrings")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadParsesSourceAndTargetLanguages(t *testing.T) {
	path := writeTempCatalog(t, singleStringDoc)

	c, err := Load(path, nil)
	require.NoError(t, err)
	require.Equal(t, "en", c.SourceLanguage.Code())
	require.Contains(t, c.TargetLanguages, "fr")
	require.Equal(t, []string{"Hello"}, c.AllKeys())
}

func TestLoadSynthesizesMissingSourceRow(t *testing.T) {
	path := writeTempCatalog(t, singleStringDoc)

	c, err := Load(path, nil)
	require.NoError(t, err)

	group, ok := c.Group("Hello")
	require.True(t, ok)

	source, ok := group.String(c.SourceLanguage)
	require.True(t, ok)
	require.Equal(t, StateTranslated, source.State)
	require.Equal(t, "Hello", *source.TranslatedValue)
}

func TestSetTranslationTransitionsState(t *testing.T) {
	path := writeTempCatalog(t, singleStringDoc)
	c, err := Load(path, nil)
	require.NoError(t, err)

	group, _ := c.Group("Hello")
	fr, _ := group.String(language.MustParse("fr"))
	require.Equal(t, StateNew, fr.State)

	fr.SetTranslation("Bonjour")
	require.Equal(t, StateTranslated, fr.State)
	require.Equal(t, "Bonjour", *fr.TranslatedValue)
}

func TestNeedsReviewRoundTrip(t *testing.T) {
	path := writeTempCatalog(t, singleStringDoc)
	c, _ := Load(path, nil)
	group, _ := c.Group("Hello")
	fr, _ := group.String(language.MustParse("fr"))

	fr.SetTranslation("Bonjour")
	fr.SetNeedsReview()
	require.Equal(t, StateNeedsReview, fr.State)

	fr.SetTranslated()
	require.Equal(t, StateTranslated, fr.State)

	// Rejection: re-marked for review and not approved, the entry stays
	// needs_review.
	fr.SetNeedsReview()
	prior := fr.State
	require.Equal(t, StateNeedsReview, prior)
}

func TestWriteLoadRoundTripPreservesOrderAndUnknownFields(t *testing.T) {
	// Two-key doc (to assert group order survives) plus an unrecognized
	// top-level field.
	doc := `{"sourceLanguage":"en","strings":{"B":{"localizations":{"fr":{"stringUnit":{"state":"new","value":""}}}},"A":{"localizations":{"fr":{"stringUnit":{"state":"new","value":""}}}}},"formatVersion":"1.0"}`

	path := writeTempCatalog(t, doc)

	c1, err := Load(path, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"B", "A"}, c1.AllKeys())

	outPath := filepath.Join(filepath.Dir(path), "out.xcstrings")
	require.NoError(t, c1.Write(outPath))

	raw, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var generic map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &generic))
	require.Contains(t, generic, "formatVersion")

	c2, err := Load(outPath, nil)
	require.NoError(t, err)
	require.Equal(t, c1.AllKeys(), c2.AllKeys())
	require.Equal(t, c1.SourceLanguage.Code(), c2.SourceLanguage.Code())
}

func TestApplyTargetLanguagesOverrideAddsAndDrops(t *testing.T) {
	path := writeTempCatalog(t, singleStringDoc)
	c, err := Load(path, []language.Language{language.MustParse("fr"), language.MustParse("de")})
	require.NoError(t, err)

	group, _ := c.Group("Hello")

	_, hasFr := group.String(language.MustParse("fr"))
	_, hasDe := group.String(language.MustParse("de"))
	require.True(t, hasFr)
	require.True(t, hasDe)

	de, _ := group.String(language.MustParse("de"))
	require.Equal(t, StateNew, de.State)

	// An override without fr drops the existing fr entry.
	dropped, err := Load(path, []language.Language{language.MustParse("de")})
	require.NoError(t, err)
	group, _ = dropped.Group("Hello")
	_, hasFr = group.String(language.MustParse("fr"))
	require.False(t, hasFr)
}

func TestTargetPathOverwritePolicy(t *testing.T) {
	require.Equal(t, "/a/b.xcstrings", TargetPath("/a/b.xcstrings", true))
	require.Equal(t, "/a/b.loc.xcstrings", TargetPath("/a/b.xcstrings", false))
}
