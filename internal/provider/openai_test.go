// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package provider

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/archmagece/translocate/internal/language"
	"github.com/stretchr/testify/require"
)

func TestOpenAIProviderTranslate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Bonjour"}}]}`))
	}))
	defer server.Close()

	p := NewOpenAIProvider(server.URL, "gpt-4o-mini")
	out, err := p.Translate(t.Context(), "Hello", language.MustParse("en"), language.MustParse("fr"), "")
	require.NoError(t, err)
	require.Equal(t, "Bonjour", out)
}

func TestOpenAIProviderEvaluateQualityGood(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"good"}}]}`))
	}))
	defer server.Close()

	p := NewOpenAIProvider(server.URL, "gpt-4o-mini")
	result, err := p.EvaluateQuality(t.Context(), "Hello", "Bonjour", language.MustParse("fr"), "")
	require.NoError(t, err)
	require.Equal(t, QualityGood, result.Quality)
}

func TestOpenAIProviderNoChoicesIsNoTranslationReturned(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	p := NewOpenAIProvider(server.URL, "gpt-4o-mini")
	_, err := p.Translate(t.Context(), "Hello", language.MustParse("en"), language.MustParse("fr"), "")
	require.Error(t, err)
}
