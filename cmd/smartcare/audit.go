/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/suparena/smartcare/audit"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Report translation coverage of the stored content",
	RunE: func(cmd *cobra.Command, args []string) error {
		collections, _ := cmd.Flags().GetStringSlice("collections")

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		client, err := openClient(ctx)
		if err != nil {
			return err
		}
		langs, err := cfg.LanguageSet()
		if err != nil {
			return err
		}

		opts := []audit.Option{audit.WithLogger(logger)}
		if len(collections) > 0 {
			opts = append(opts, audit.WithCollections(collections...))
		}
		report, err := audit.New(client, langs, opts...).Run(ctx)
		if err != nil {
			return err
		}
		return report.Write(cmd.OutOrStdout())
	},
}
