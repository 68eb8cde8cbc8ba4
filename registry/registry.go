/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/suparena/smartcare/storagemodels"
)

// Registry holds the local data served when the document store cannot
// answer. Collection fallbacks are language independent and returned
// unchanged; section fallbacks are registered per language.
type Registry struct {
	mu          sync.RWMutex
	collections map[string][]storagemodels.Document
	sections    map[sectionKey]storagemodels.Document
}

type sectionKey struct {
	lang    string
	section string
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		collections: make(map[string][]storagemodels.Document),
		sections:    make(map[sectionKey]storagemodels.Document),
	}
}

// RegisterCollection registers the fallback list for a collection.
// It panics if the collection already has one, to prevent accidental overrides.
func (r *Registry) RegisterCollection(collection string, docs []storagemodels.Document) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.collections[collection]; exists {
		panic(fmt.Sprintf("fallback registry: collection %q already registered", collection))
	}
	r.collections[collection] = cloneAll(docs)
}

// Collection returns a copy of the fallback list for collection.
func (r *Registry) Collection(collection string) ([]storagemodels.Document, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	docs, ok := r.collections[collection]
	if !ok {
		return nil, false
	}
	return cloneAll(docs), true
}

// RegisterSection registers the fallback for a translation section in lang.
// It panics if one is already registered.
func (r *Registry) RegisterSection(lang, section string, doc storagemodels.Document) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := sectionKey{lang: lang, section: section}
	if _, exists := r.sections[key]; exists {
		panic(fmt.Sprintf("fallback registry: section %q for %q already registered", section, lang))
	}
	r.sections[key] = doc.Clone()
}

// Section returns a copy of the fallback for a translation section.
func (r *Registry) Section(lang, section string) (storagemodels.Document, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.sections[sectionKey{lang: lang, section: section}]
	if !ok {
		return nil, false
	}
	return doc.Clone(), true
}

// Collections lists collections with a registered fallback, sorted.
func (r *Registry) Collections() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.collections))
	for name := range r.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func cloneAll(docs []storagemodels.Document) []storagemodels.Document {
	out := make([]storagemodels.Document, len(docs))
	for i, d := range docs {
		out[i] = d.Clone()
	}
	return out
}
