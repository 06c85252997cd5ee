// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package coordinator implements the Action Coordinator (§4.I): it
// dispatches one of translate-text / translate-files / review-files,
// aggregates counts, and emits a single colored summary line with elapsed
// wall time — grounded on the teacher's end-of-run summary lines in
// cmd/synclone/synclone_github.go, which print a colorized one-line
// "X repos cloned in Yms" result after a bulk operation.
package coordinator

import (
	"context"
	sterrors "errors"
	"fmt"
	"time"

	"github.com/fatih/color"

	apperrors "github.com/archmagece/translocate/internal/errors"
	"github.com/archmagece/translocate/internal/evaluator"
	"github.com/archmagece/translocate/internal/finder"
	"github.com/archmagece/translocate/internal/jsonspec"
	"github.com/archmagece/translocate/internal/language"
	"github.com/archmagece/translocate/internal/logger"
	"github.com/archmagece/translocate/internal/provider"
	"github.com/archmagece/translocate/internal/translator"
)

// TranslateFilesOptions configures a translate-files run (§6 `translate`).
type TranslateFilesOptions struct {
	Path                           string
	Languages                      []language.Language
	OnlyFiles                      []string
	Overwrite                      bool
	SetNeedsReviewAfterTranslating bool
	SkipConfirm                    bool
	Concurrency                    int
	MassTranslationThreshold       int
	ShowProgress                   bool
}

// ReviewFilesOptions configures a review-files run (§6 `review`).
type ReviewFilesOptions struct {
	Path        string
	Languages   []language.Language
	Overwrite   bool
	SkipConfirm bool
	Concurrency int
}

// Coordinator dispatches the three CLI actions over one provider (§4.I).
type Coordinator struct {
	Provider provider.Provider
	Log      logger.CommonLogger
}

func New(p provider.Provider, log logger.CommonLogger) *Coordinator {
	return &Coordinator{Provider: p, Log: log}
}

// TranslateText prints one "language: translation" line per target (§6
// `translate-text`), with no catalog involved (§13 supplemented feature).
func (c *Coordinator) TranslateText(ctx context.Context, text string, targets []language.Language) error {
	start := time.Now()

	var sourceLang language.Language
	if len(targets) > 0 {
		sourceLang = language.MustParse("en")
	}

	translated := 0
	for _, target := range targets {
		out, err := c.Provider.Translate(ctx, text, sourceLang, target, "")
		if err != nil {
			if c.Log != nil {
				c.Log.Error("translation failed", "language", target.Code(), "reason", err.Error())
			}
			continue
		}
		fmt.Printf("%s: %s\n", target.Code(), out)
		translated++
	}

	c.printSummary("translated", translated, time.Since(start))
	return nil
}

// TranslateFiles discovers files under opts.Path and, per file, dispatches
// to the Catalog Translator or the JSON Spec Translator depending on the
// inferred type (§4.I, §4.D).
func (c *Coordinator) TranslateFiles(ctx context.Context, opts TranslateFilesOptions) error {
	start := time.Now()

	f := finder.New("", c.Log)
	paths, err := f.Find(opts.Path)
	if err != nil {
		return c.fail("enumerate", start, err)
	}

	total := 0
	for _, path := range paths {
		fileType, err := finder.InferType(path)
		if err != nil {
			if c.Log != nil {
				c.Log.Error("unhandled file type", "path", path, "reason", err.Error())
			}
			continue
		}

		switch fileType {
		case finder.TypeStringCatalog:
			tr := translator.New(c.Provider, c.Log, translator.Options{
				Overwrite:                      opts.Overwrite,
				SetNeedsReviewAfterTranslating: opts.SetNeedsReviewAfterTranslating,
				SkipConfirm:                    opts.SkipConfirm,
				Concurrency:                    opts.Concurrency,
				MassTranslationThreshold:       opts.MassTranslationThreshold,
				ShowProgress:                   opts.ShowProgress,
			})
			count, err := tr.TranslateFile(ctx, path, opts.Languages)
			if err != nil {
				if sterrors.Is(err, translator.ErrCanceled) {
					return c.fail("translate", start, err)
				}
				if c.Log != nil {
					c.Log.Error("failed to translate file", "path", path, "reason", err.Error())
				}
				continue
			}
			total += count

		case finder.TypeJSONSpecification:
			jt := jsonspec.New(c.Provider, c.Log, jsonspec.Options{
				Overwrite: opts.Overwrite,
				OnlyFiles: opts.OnlyFiles,
			})
			if _, err := jt.TranslateSpec(ctx, path, opts.Languages); err != nil {
				if c.Log != nil {
					c.Log.Error("failed to translate spec", "path", path, "reason", err.Error())
				}
				continue
			}
		}
	}

	c.printSummary("translated", total, time.Since(start))
	return nil
}

// ReviewFiles discovers catalog files under opts.Path (type forced to
// stringCatalog, §4.I) and runs the Catalog Evaluator over each.
func (c *Coordinator) ReviewFiles(ctx context.Context, opts ReviewFilesOptions) error {
	start := time.Now()

	ev, err := evaluator.New(c.Provider, c.Log, evaluator.Options{
		Overwrite:   opts.Overwrite,
		Concurrency: opts.Concurrency,
	})
	if err != nil {
		return c.fail("load", start, err)
	}

	f := finder.New(finder.TypeStringCatalog, c.Log)
	paths, err := f.Find(opts.Path)
	if err != nil {
		return c.fail("enumerate", start, err)
	}

	total := 0
	for _, path := range paths {
		count, err := ev.ReviewFile(ctx, path, opts.Languages)
		if err != nil {
			if c.Log != nil {
				c.Log.Error("failed to review file", "path", path, "reason", err.Error())
			}
			continue
		}
		total += count
	}

	c.printSummary("reviewed", total, time.Since(start))
	return nil
}

func (c *Coordinator) printSummary(verb string, count int, elapsed time.Duration) {
	line := fmt.Sprintf("%d entries %s in %s", count, verb, elapsed.Round(time.Millisecond))
	fmt.Println(color.GreenString(line))
}

// fail wraps a run-aborting setup failure (enumerate/load/translate-cancel)
// as a RecoverableError classified by the sentinel it carries, logs it, and
// prints a one-line colored summary keyed off the error's Type before
// returning it to the caller.
func (c *Coordinator) fail(stage string, start time.Time, err error) error {
	re := apperrors.NewRecoverableError(classifyError(err), stage, err).Elapsed(time.Since(start))

	if c.Log != nil {
		c.Log.Error(re.Error())
	}
	fmt.Println(colorForErrorType(re.Type).Sprint(re.Error()))

	return re
}

// classifyError maps a coordinator-level failure to the ErrorType used to
// color its summary line.
func classifyError(err error) apperrors.ErrorType {
	switch {
	case sterrors.Is(err, translator.ErrCanceled):
		return apperrors.ErrorTypeCanceled
	case sterrors.Is(err, apperrors.ErrEvaluationNotSupported):
		return apperrors.ErrorTypeProvider
	case sterrors.Is(err, apperrors.ErrCouldNotSearchDirectory),
		sterrors.Is(err, apperrors.ErrFailedToLoadCatalog),
		sterrors.Is(err, apperrors.ErrFailedToParseLocale),
		sterrors.Is(err, apperrors.ErrFileNotFound),
		sterrors.Is(err, apperrors.ErrUnhandledFileType):
		return apperrors.ErrorTypeIO
	default:
		return apperrors.ErrorTypeValidation
	}
}

func colorForErrorType(t apperrors.ErrorType) *color.Color {
	switch t {
	case apperrors.ErrorTypeCanceled:
		return color.New(color.FgCyan)
	case apperrors.ErrorTypeIO:
		return color.New(color.FgRed, color.Bold)
	case apperrors.ErrorTypeProvider:
		return color.New(color.FgMagenta)
	default:
		return color.New(color.FgYellow)
	}
}
