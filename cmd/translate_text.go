// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/archmagece/translocate/internal/app"
	"github.com/archmagece/translocate/internal/coordinator"
)

type translateTextOptions struct {
	langs []string
}

func newTranslateTextCmd(ctx context.Context) *cobra.Command {
	o := &translateTextOptions{}

	cmd := &cobra.Command{
		Use:   "translate-text <text>",
		Short: "Translate a single literal string into each requested target language",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(ctx, args[0])
		},
	}

	cmd.Flags().StringSliceVar(&o.langs, "lang", nil, "Target language code; may repeat")
	_ = cmd.MarkFlagRequired("lang")

	return cmd
}

func (o *translateTextOptions) run(ctx context.Context, text string) error {
	appCtx, err := app.New("translate-text")
	if err != nil {
		return err
	}

	targets, err := parseLanguages(o.langs)
	if err != nil {
		return err
	}

	c := coordinator.New(appCtx.Provider, appCtx.Logger)
	return c.TranslateText(ctx, text, targets)
}
