// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	apperrors "github.com/archmagece/translocate/internal/errors"
	"github.com/archmagece/translocate/internal/language"
)

// OpenAIProvider is the default Provider (§13): a minimal chat-completion
// client against an OpenAI-compatible endpoint. It is swappable — every
// component that consumes Provider is tested against hand-written fakes,
// never this client.
type OpenAIProvider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

var _ Provider = (*OpenAIProvider)(nil)
var _ QualityEvaluator = (*OpenAIProvider)(nil)

// NewOpenAIProvider reads OPENAI_API_KEY (§6) and builds a client against
// baseURL using model for every request.
func NewOpenAIProvider(baseURL, model string) *OpenAIProvider {
	return &OpenAIProvider{
		apiKey:  os.Getenv("OPENAI_API_KEY"),
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (p *OpenAIProvider) call(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	reqBody := chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("provider returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 {
		return "", apperrors.ErrNoTranslationReturned
	}

	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

// Translate implements Provider.
func (p *OpenAIProvider) Translate(ctx context.Context, text string, source, target language.Language, comment string) (string, error) {
	system := fmt.Sprintf(
		"You are a professional translator. Translate the given text from %s to %s. "+
			"Preserve any printf-style format specifiers (%%@, %%d, %%s, ...) and {placeholder} "+
			"braces exactly. Respond with only the translation, no commentary.",
		source.Code(), target.Code())

	user := text
	if comment != "" {
		user = fmt.Sprintf("%s\n\nContext: %s", text, comment)
	}

	out, err := p.call(ctx, system, user)
	if err != nil {
		return "", err
	}
	if out == "" {
		return "", apperrors.ErrNoTranslationReturned
	}
	return out, nil
}

// EvaluateQuality implements QualityEvaluator.
func (p *OpenAIProvider) EvaluateQuality(ctx context.Context, source, translation string, target language.Language, comment string) (EvaluationResult, error) {
	system := fmt.Sprintf(
		"You review translations into %s for correctness and fluency. "+
			"Reply with exactly one line: either \"good\" or \"poor: <reason>\".", target.Code())

	user := fmt.Sprintf("Source: %s\nTranslation: %s", source, translation)
	if comment != "" {
		user += fmt.Sprintf("\nContext: %s", comment)
	}

	out, err := p.call(ctx, system, user)
	if err != nil {
		return EvaluationResult{}, err
	}

	if strings.HasPrefix(strings.ToLower(out), "good") {
		return EvaluationResult{Quality: QualityGood}, nil
	}
	return EvaluationResult{Quality: QualityPoor, Explanation: out}, nil
}
