/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/suparena/smartcare"
	"github.com/suparena/smartcare/datastore"
	"github.com/suparena/smartcare/fallback"
	"github.com/suparena/smartcare/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write the bundled bilingual content to the document store",
	RunE: func(cmd *cobra.Command, args []string) error {
		merge, _ := cmd.Flags().GetBool("merge")
		concurrency, _ := cmd.Flags().GetInt("concurrency")
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		langs, err := cfg.LanguageSet()
		if err != nil {
			return err
		}
		set, err := fallback.LoadSeed()
		if err != nil {
			return err
		}

		if dryRun {
			for _, w := range seed.Plan(set, langs) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s/%s\n", w.Collection, w.ID)
			}
			return nil
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		client, err := openClient(ctx)
		if err != nil {
			return err
		}

		summary, err := seed.New(client, langs,
			seed.WithLogger(logger),
			seed.WithConcurrency(concurrency),
			seed.WithMerge(merge),
		).Run(ctx, set)
		for _, collection := range sortedCollections(summary) {
			fmt.Fprintf(cmd.OutOrStdout(), "%-20s %d\n", collection, summary[collection])
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d documents\n", summary.Total())
		return nil
	},
}

// openClient opens the configured backend for commands that need a live
// store.
func openClient(ctx context.Context) (*datastore.Client, error) {
	langs, err := cfg.LanguageSet()
	if err != nil {
		return nil, err
	}
	store, err := smartcare.DefaultBackends().Open(ctx, cfg.Store.Backend, smartcare.BackendOptions{
		Store:     cfg.Store,
		Languages: langs,
		Logger:    logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Store.Backend, err)
	}
	client := datastore.NewClient(store, cfg.Store.Timeout)
	if !client.Available() {
		return nil, fmt.Errorf("backend %q has no document store", cfg.Store.Backend)
	}
	return client, nil
}

func sortedCollections(summary seed.Summary) []string {
	names := make([]string, 0, len(summary))
	for name := range summary {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
