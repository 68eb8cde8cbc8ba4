/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package seed

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/suparena/smartcare/datastore"
	"github.com/suparena/smartcare/fallback"
	"github.com/suparena/smartcare/language"
	"github.com/suparena/smartcare/storagemodels"
)

// TranslationsCollection receives one document per section and language.
const TranslationsCollection = "translations"

// OrderField carries an entry's display position into its documents.
const OrderField = "order"

// Write is one planned document write.
type Write struct {
	Collection string
	ID         string
	Document   storagemodels.Document
}

// Plan turns seed content into document writes. Translation sections become
// flat <lang>_<section> documents; collection entries become split
// documents keyed by language code. Languages outside langs are skipped.
func Plan(set *fallback.SeedSet, langs language.Set) []Write {
	var writes []Write

	for _, section := range sortedKeys(set.Translations) {
		for _, lang := range langs.Supported() {
			doc, ok := set.Translations[section][lang]
			if !ok {
				continue
			}
			writes = append(writes, Write{
				Collection: TranslationsCollection,
				ID:         lang + "_" + section,
				Document:   doc.Clone(),
			})
		}
	}

	for _, collection := range sortedKeys(set.Collections) {
		for _, entry := range set.Collections[collection] {
			doc := make(storagemodels.Document, len(entry.Languages))
			for _, lang := range langs.Supported() {
				fields, ok := entry.Languages[lang]
				if !ok {
					continue
				}
				fields = fields.Clone()
				if fields == nil {
					fields = storagemodels.Document{}
				}
				if entry.Order > 0 {
					fields[OrderField] = entry.Order
				}
				doc[lang] = map[string]any(fields)
			}
			writes = append(writes, Write{Collection: collection, ID: entry.ID, Document: doc})
		}
	}
	return writes
}

// Seeder writes planned documents to the store.
type Seeder struct {
	client      *datastore.Client
	langs       language.Set
	logger      *zap.Logger
	concurrency int
	merge       bool
}

// Option configures a Seeder.
type Option func(*Seeder)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Seeder) {
		s.logger = logger
	}
}

// WithConcurrency bounds parallel writes. Values below 1 mean 1.
func WithConcurrency(n int) Option {
	return func(s *Seeder) {
		if n < 1 {
			n = 1
		}
		s.concurrency = n
	}
}

// WithMerge merges into existing documents instead of replacing them.
func WithMerge(merge bool) Option {
	return func(s *Seeder) {
		s.merge = merge
	}
}

// New returns a Seeder.
func New(client *datastore.Client, langs language.Set, opts ...Option) *Seeder {
	s := &Seeder{
		client:      client,
		langs:       langs,
		logger:      zap.NewNop(),
		concurrency: 4,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summary counts written documents per collection.
type Summary map[string]int

// Total is the number of written documents.
func (s Summary) Total() int {
	n := 0
	for _, c := range s {
		n += c
	}
	return n
}

// Run writes every document planned from set. It stops at the first failed
// write and returns what was written so far.
func (s *Seeder) Run(ctx context.Context, set *fallback.SeedSet) (Summary, error) {
	writes := Plan(set, s.langs)
	written := make([]atomic.Bool, len(writes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, w := range writes {
		g.Go(func() error {
			if err := s.client.Set(gctx, w.Collection, w.ID, w.Document, s.merge); err != nil {
				return fmt.Errorf("failed to seed %s/%s: %w", w.Collection, w.ID, err)
			}
			written[i].Store(true)
			s.logger.Debug("seeded document", zap.String("collection", w.Collection), zap.String("id", w.ID))
			return nil
		})
	}
	err := g.Wait()

	summary := make(Summary)
	for i, w := range writes {
		if written[i].Load() {
			summary[w.Collection]++
		}
	}
	s.logger.Info("seed finished", zap.Int("documents", summary.Total()), zap.Int("planned", len(writes)))
	return summary, err
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
