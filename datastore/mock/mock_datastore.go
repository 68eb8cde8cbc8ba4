/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory implementation of datastore.DocumentStore for testing
package mock

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/suparena/smartcare/errors"
	"github.com/suparena/smartcare/storagemodels"
)

// DataStore is an in-memory datastore.DocumentStore
type DataStore struct {
	mu          sync.RWMutex
	data        map[string]map[string]storagemodels.Document
	getError    error
	listError   error
	setError    error
	deleteError error
	delay       time.Duration
	reads       atomic.Int64
}

// New creates a new empty mock DataStore
func New() *DataStore {
	return &DataStore{
		data: make(map[string]map[string]storagemodels.Document),
	}
}

// WithGetError makes Get operations return an error
func (m *DataStore) WithGetError(err error) *DataStore {
	m.getError = err
	return m
}

// WithListError makes List operations return an error
func (m *DataStore) WithListError(err error) *DataStore {
	m.listError = err
	return m
}

// WithSetError makes Set operations return an error
func (m *DataStore) WithSetError(err error) *DataStore {
	m.setError = err
	return m
}

// WithDeleteError makes Delete operations return an error
func (m *DataStore) WithDeleteError(err error) *DataStore {
	m.deleteError = err
	return m
}

// WithDelay makes every operation wait before answering, honoring ctx
func (m *DataStore) WithDelay(d time.Duration) *DataStore {
	m.delay = d
	return m
}

// Get retrieves a document by collection and ID
func (m *DataStore) Get(ctx context.Context, collection, id string) (storagemodels.Document, error) {
	m.reads.Add(1)
	if err := m.wait(ctx, "get"); err != nil {
		return nil, err
	}
	if m.getError != nil {
		return nil, m.getError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.data[collection][id]
	if !ok {
		return nil, errors.NewNotFoundError(collection, id)
	}
	return copyDocument(doc), nil
}

// List returns every document of a collection ordered by ID
func (m *DataStore) List(ctx context.Context, collection string) ([]storagemodels.Record, error) {
	m.reads.Add(1)
	if err := m.wait(ctx, "list"); err != nil {
		return nil, err
	}
	if m.listError != nil {
		return nil, m.listError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	docs := m.data[collection]
	records := make([]storagemodels.Record, 0, len(docs))
	for id, doc := range docs {
		records = append(records, storagemodels.Record{ID: id, Document: copyDocument(doc)})
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}

// Set stores a document, merging top-level fields when merge is set
func (m *DataStore) Set(ctx context.Context, collection, id string, doc storagemodels.Document, merge bool) error {
	if err := m.wait(ctx, "set"); err != nil {
		return err
	}
	if m.setError != nil {
		return m.setError
	}
	if collection == "" || id == "" {
		return errors.NewValidationError("key", "collection and id are required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.data[collection] == nil {
		m.data[collection] = make(map[string]storagemodels.Document)
	}
	existing, ok := m.data[collection][id]
	if merge && ok {
		merged := copyDocument(existing)
		for k, v := range doc {
			merged[k] = v
		}
		m.data[collection][id] = merged
		return nil
	}
	m.data[collection][id] = copyDocument(doc)
	return nil
}

// Delete removes a document
func (m *DataStore) Delete(ctx context.Context, collection, id string) error {
	if err := m.wait(ctx, "delete"); err != nil {
		return err
	}
	if m.deleteError != nil {
		return m.deleteError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.data[collection][id]; !exists {
		return errors.NewNotFoundError(collection, id)
	}
	delete(m.data[collection], id)
	return nil
}

// Helper methods for testing

// Seed stores documents directly, bypassing error injection
func (m *DataStore) Seed(collection string, docs map[string]storagemodels.Document) *DataStore {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.data[collection] == nil {
		m.data[collection] = make(map[string]storagemodels.Document)
	}
	for id, doc := range docs {
		m.data[collection][id] = copyDocument(doc)
	}
	return m
}

// Count returns the number of documents in a collection
func (m *DataStore) Count(collection string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data[collection])
}

// Reads returns how many Get and List calls reached the store
func (m *DataStore) Reads() int64 {
	return m.reads.Load()
}

// Clear removes all data
func (m *DataStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string]map[string]storagemodels.Document)
}

func (m *DataStore) wait(ctx context.Context, op string) error {
	if m.delay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return errors.NewUnavailableError(op, ctx.Err())
	case <-time.After(m.delay):
		return nil
	}
}

// copyDocument copies maps and slices recursively so callers cannot mutate
// stored state through a returned document.
func copyDocument(doc storagemodels.Document) storagemodels.Document {
	if doc == nil {
		return nil
	}
	out := make(storagemodels.Document, len(doc))
	for k, v := range doc {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch tv := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(tv))
		for k, inner := range tv {
			out[k] = copyValue(inner)
		}
		return out
	case storagemodels.Document:
		return copyDocument(tv)
	case []any:
		out := make([]any, len(tv))
		for i, inner := range tv {
			out[i] = copyValue(inner)
		}
		return out
	default:
		return v
	}
}
