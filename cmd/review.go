// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/archmagece/translocate/internal/app"
	"github.com/archmagece/translocate/internal/coordinator"
)

type reviewOptions struct {
	langs       []string
	overwrite   bool
	skipConfirm bool
	concurrency int
}

func defaultReviewOptions() *reviewOptions {
	return &reviewOptions{concurrency: 10}
}

func newReviewCmd(ctx context.Context) *cobra.Command {
	o := defaultReviewOptions()

	cmd := &cobra.Command{
		Use:   "review <path>",
		Short: "Re-evaluate entries marked needs_review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(ctx, cmd, args[0])
		},
	}

	cmd.Flags().StringSliceVar(&o.langs, "lang", nil, "Target language code; may repeat, empty means every language present in the catalog")
	cmd.Flags().BoolVar(&o.overwrite, "overwrite", false, "Write reviewed translations into the source file instead of a .loc sidecar")
	cmd.Flags().BoolVar(&o.skipConfirm, "skip-confirm", false, "Accepted for parity with translate; review shows no confirmation prompt, so this has no effect")
	cmd.Flags().IntVar(&o.concurrency, "concurrency", o.concurrency, "Maximum concurrent provider calls (overrides concurrency.numberOfConcurrentTasks in config)")

	return cmd
}

func (o *reviewOptions) run(ctx context.Context, cmd *cobra.Command, path string) error {
	appCtx, err := app.New("review")
	if err != nil {
		return err
	}

	if !cmd.Flags().Changed("concurrency") && appCtx.Config.Concurrency.NumberOfConcurrentTasks > 0 {
		o.concurrency = appCtx.Config.Concurrency.NumberOfConcurrentTasks
	}

	targets, err := parseLanguages(o.langs)
	if err != nil {
		return err
	}

	c := coordinator.New(appCtx.Provider, appCtx.Logger)
	return c.ReviewFiles(ctx, coordinator.ReviewFilesOptions{
		Path:        path,
		Languages:   targets,
		Overwrite:   o.overwrite,
		SkipConfirm: o.skipConfirm,
		Concurrency: o.concurrency,
	})
}
