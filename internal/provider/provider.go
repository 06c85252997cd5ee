// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package provider defines the translation/evaluation contract consumed by
// the core (§4.A) and a concrete HTTP-backed implementation against an
// OpenAI-compatible chat-completion endpoint (§13).
package provider

import (
	"context"

	"github.com/archmagece/translocate/internal/language"
)

// Quality is an evaluateQuality verdict (§4.A).
type Quality string

const (
	QualityGood Quality = "good"
	QualityPoor Quality = "poor"
)

// EvaluationResult is the outcome of EvaluateQuality.
type EvaluationResult struct {
	Quality     Quality
	Explanation string
}

// Provider translates one string and, optionally, evaluates one
// translation's quality. The core assumes implementations are safe for
// concurrent use from many worker-pool tasks (§4.A).
type Provider interface {
	// Translate returns the translated text, or ErrNoTranslationReturned /
	// a transport error.
	Translate(ctx context.Context, text string, source, target language.Language, comment string) (string, error)
}

// QualityEvaluator is implemented by providers that can additionally review
// an existing translation. A Provider that doesn't implement it causes
// review commands to fail fast with ErrEvaluationNotSupported (§4.G).
type QualityEvaluator interface {
	EvaluateQuality(ctx context.Context, source, translation string, target language.Language, comment string) (EvaluationResult, error)
}

// SupportsEvaluation is a convenience type assertion helper for §4.G's
// fail-fast check.
func SupportsEvaluation(p Provider) (QualityEvaluator, bool) {
	e, ok := p.(QualityEvaluator)
	return e, ok
}
