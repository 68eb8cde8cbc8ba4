/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package audit

import (
	"context"
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"
	"sync"
	"text/tabwriter"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/suparena/smartcare/datastore"
	"github.com/suparena/smartcare/errors"
	"github.com/suparena/smartcare/language"
	"github.com/suparena/smartcare/storagemodels"
)

// TranslationsCollection holds <lang>_<section> documents.
const TranslationsCollection = "translations"

// DefaultCollections are the split-document collections checked by default.
var DefaultCollections = []string{"team_members", "roadmap_milestones", "roadmap_next_steps"}

// Entry is the language coverage of one logical document. For the
// translations collection ID is the section name.
type Entry struct {
	Collection string
	ID         string
	Languages  []string
}

// Report aggregates coverage over every audited collection.
type Report struct {
	Languages []string
	Entries   []Entry
	Total     int
	Complete  int
	Empty     int
	// Only counts entries available in exactly one language.
	Only map[string]int
	// Missing lists "collection/id" of entries lacking some language.
	Missing []string
	// Unavailable lists collections that could not be read.
	Unavailable []string
}

// Coverage is the share of complete entries in percent.
func (r *Report) Coverage() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Complete) / float64(r.Total) * 100
}

// Auditor checks translation coverage of the stored content.
type Auditor struct {
	client      *datastore.Client
	langs       language.Set
	collections []string
	logger      *zap.Logger
}

// Option configures an Auditor.
type Option func(*Auditor)

// WithCollections overrides DefaultCollections.
func WithCollections(collections ...string) Option {
	return func(a *Auditor) {
		a.collections = collections
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Auditor) {
		a.logger = logger
	}
}

// New returns an Auditor.
func New(client *datastore.Client, langs language.Set, opts ...Option) *Auditor {
	a := &Auditor{
		client:      client,
		langs:       langs,
		collections: DefaultCollections,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run audits the translations collection and every configured collection.
// Collections that cannot be read are listed in Report.Unavailable.
func (a *Auditor) Run(ctx context.Context) (*Report, error) {
	if !a.client.Available() {
		return nil, errors.NewUnavailableError("audit", nil)
	}

	var (
		mu          sync.Mutex
		entries     []Entry
		unavailable []string
	)
	collect := func(collection string, found []Entry, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			a.logger.Warn("collection not audited", zap.String("collection", collection), zap.Error(err))
			unavailable = append(unavailable, collection)
			return
		}
		entries = append(entries, found...)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		found, err := a.translations(gctx)
		collect(TranslationsCollection, found, err)
		return nil
	})
	for _, collection := range a.collections {
		g.Go(func() error {
			found, err := a.splitCollection(gctx, collection)
			collect(collection, found, err)
			return nil
		})
	}
	_ = g.Wait()

	sort.Strings(unavailable)
	return a.summarize(entries, unavailable), nil
}

func (a *Auditor) list(ctx context.Context, collection string) ([]storagemodels.Record, error) {
	res := a.client.List(ctx, collection)
	switch res.Status {
	case storagemodels.StatusUnavailable:
		return nil, res.Err
	case storagemodels.StatusNotFound:
		return nil, nil
	}
	return res.Value, nil
}

// translations groups <lang>_<section> documents by section.
func (a *Auditor) translations(ctx context.Context) ([]Entry, error) {
	records, err := a.list(ctx, TranslationsCollection)
	if err != nil {
		return nil, err
	}

	sections := make(map[string][]string)
	for _, rec := range records {
		lang, section, ok := strings.Cut(rec.ID, "_")
		if !ok || !a.langs.IsSupported(lang) {
			// Not a <lang>_<section> document; reported without languages.
			if _, seen := sections[rec.ID]; !seen {
				sections[rec.ID] = nil
			}
			continue
		}
		sections[section] = append(sections[section], strings.ToLower(lang))
	}

	entries := make([]Entry, 0, len(sections))
	for section, langs := range sections {
		entries = append(entries, Entry{
			Collection: TranslationsCollection,
			ID:         section,
			Languages:  a.ordered(langs),
		})
	}
	return entries, nil
}

// splitCollection reads which language keys each document carries.
func (a *Auditor) splitCollection(ctx context.Context, collection string) ([]Entry, error) {
	records, err := a.list(ctx, collection)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(records))
	for _, rec := range records {
		var langs []string
		for _, code := range a.langs.Supported() {
			if _, ok := rec.Document[code]; ok {
				langs = append(langs, code)
			}
		}
		entries = append(entries, Entry{Collection: collection, ID: rec.ID, Languages: langs})
	}
	return entries, nil
}

// ordered returns the supported codes present in langs, in set order.
func (a *Auditor) ordered(langs []string) []string {
	var out []string
	for _, code := range a.langs.Supported() {
		if slices.Contains(langs, code) {
			out = append(out, code)
		}
	}
	return out
}

func (a *Auditor) summarize(entries []Entry, unavailable []string) *Report {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Collection != entries[j].Collection {
			return entries[i].Collection < entries[j].Collection
		}
		return entries[i].ID < entries[j].ID
	})

	supported := a.langs.Supported()
	r := &Report{
		Languages:   supported,
		Entries:     entries,
		Total:       len(entries),
		Only:        make(map[string]int, len(supported)),
		Unavailable: unavailable,
	}
	for _, e := range entries {
		switch len(e.Languages) {
		case len(supported):
			r.Complete++
			continue
		case 0:
			r.Empty++
		case 1:
			r.Only[e.Languages[0]]++
		}
		if len(e.Languages) > 0 {
			r.Missing = append(r.Missing, e.Collection+"/"+e.ID)
		}
	}
	return r
}

// Write prints the report as plain text.
func (r *Report) Write(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "COLLECTION\tDOCUMENT\tLANGUAGES\tSTATUS")
	for _, e := range r.Entries {
		status := "ok"
		switch {
		case len(e.Languages) == 0:
			status = "no languages"
		case len(e.Languages) < len(r.Languages):
			status = "incomplete"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Collection, e.ID, strings.Join(e.Languages, "+"), status)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nTotal documents: %d\n", r.Total)
	fmt.Fprintf(w, "Complete:        %d\n", r.Complete)
	for _, code := range r.Languages {
		fmt.Fprintf(w, "Only %s:         %d\n", code, r.Only[code])
	}
	fmt.Fprintf(w, "No languages:    %d\n", r.Empty)
	fmt.Fprintf(w, "Coverage:        %.1f%%\n", r.Coverage())

	if len(r.Missing) > 0 {
		fmt.Fprintln(w, "\nIncomplete translations:")
		for _, m := range r.Missing {
			fmt.Fprintf(w, "  - %s\n", m)
		}
	}
	if len(r.Unavailable) > 0 {
		fmt.Fprintf(w, "\nNot audited (store unavailable): %s\n", strings.Join(r.Unavailable, ", "))
	}
	return nil
}
