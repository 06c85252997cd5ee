// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/archmagece/translocate/internal/logger"
)

var (
	verbose bool
	debug   bool
	quiet   bool
)

func newRootCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tl",
		Short: "Bulk-translate and review localization catalogs",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.SetGlobalLoggingFlags(verbose, debug, quiet)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newTranslateCmd(ctx))
	cmd.AddCommand(newTranslateTextCmd(ctx))
	cmd.AddCommand(newReviewCmd(ctx))

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging (shows all log levels)")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all logs except critical errors")

	return cmd
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	if err := newRootCmd(ctx).Execute(); err != nil {
		return fmt.Errorf("error executing root command: %w", err)
	}
	return nil
}
