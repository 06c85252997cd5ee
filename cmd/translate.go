// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package cmd

import (
	"context"
	sterrors "errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/archmagece/translocate/internal/app"
	"github.com/archmagece/translocate/internal/coordinator"
	"github.com/archmagece/translocate/internal/language"
	"github.com/archmagece/translocate/internal/translator"
)

type translateOptions struct {
	langs                    []string
	onlyFiles                []string
	overwrite                bool
	needsReview              bool
	skipConfirm              bool
	concurrency              int
	massTranslationThreshold int
	progress                 bool
}

func defaultTranslateOptions() *translateOptions {
	return &translateOptions{concurrency: 10, massTranslationThreshold: 200}
}

func newTranslateCmd(ctx context.Context) *cobra.Command {
	o := defaultTranslateOptions()

	cmd := &cobra.Command{
		Use:   "translate <path>",
		Short: "Translate every untranslated entry under a path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(ctx, cmd, args[0])
		},
	}

	cmd.Flags().StringSliceVar(&o.langs, "lang", nil, "Target language code; may repeat, empty means every language present in the catalog")
	cmd.Flags().StringSliceVar(&o.onlyFiles, "only-files", nil, "Restrict the JSON-spec driver to these file basenames")
	cmd.Flags().BoolVar(&o.overwrite, "overwrite", false, "Write translations into the source file instead of a .loc sidecar")
	cmd.Flags().BoolVar(&o.needsReview, "needs-review", false, "Mark freshly translated entries needs_review instead of translated")
	cmd.Flags().BoolVar(&o.skipConfirm, "skip-confirm", false, "Skip the mass-translation confirmation prompt")
	cmd.Flags().IntVar(&o.concurrency, "concurrency", o.concurrency, "Maximum concurrent provider calls (overrides concurrency.numberOfConcurrentTasks in config)")
	cmd.Flags().IntVar(&o.massTranslationThreshold, "mass-threshold", o.massTranslationThreshold, "Entry count past which a confirmation prompt is required (overrides concurrency.massTranslationThreshold in config)")
	cmd.Flags().BoolVar(&o.progress, "progress", false, "Show a progress bar while translating")

	return cmd
}

func (o *translateOptions) run(ctx context.Context, cmd *cobra.Command, path string) error {
	appCtx, err := app.New("translate")
	if err != nil {
		return err
	}

	if !cmd.Flags().Changed("concurrency") && appCtx.Config.Concurrency.NumberOfConcurrentTasks > 0 {
		o.concurrency = appCtx.Config.Concurrency.NumberOfConcurrentTasks
	}
	if !cmd.Flags().Changed("mass-threshold") && appCtx.Config.Concurrency.MassTranslationThreshold > 0 {
		o.massTranslationThreshold = appCtx.Config.Concurrency.MassTranslationThreshold
	}

	targets, err := parseLanguages(o.langs)
	if err != nil {
		return err
	}

	c := coordinator.New(appCtx.Provider, appCtx.Logger)
	err = c.TranslateFiles(ctx, coordinator.TranslateFilesOptions{
		Path:                           path,
		Languages:                      targets,
		OnlyFiles:                      o.onlyFiles,
		Overwrite:                      o.overwrite,
		SetNeedsReviewAfterTranslating: o.needsReview,
		SkipConfirm:                    o.skipConfirm,
		Concurrency:                    o.concurrency,
		MassTranslationThreshold:       o.massTranslationThreshold,
		ShowProgress:                   o.progress,
	})
	if sterrors.Is(err, translator.ErrCanceled) {
		fmt.Println("translation canceled")
		return nil
	}
	return err
}

func parseLanguages(codes []string) ([]language.Language, error) {
	langs := make([]language.Language, 0, len(codes))
	for _, code := range codes {
		l, err := language.Parse(code)
		if err != nil {
			return nil, err
		}
		langs = append(langs, l)
	}
	return langs, nil
}
