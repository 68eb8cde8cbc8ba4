/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package smartcare

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/suparena/smartcare/config"
	"github.com/suparena/smartcare/datastore"
	"github.com/suparena/smartcare/datastore/ddb"
	"github.com/suparena/smartcare/datastore/mock"
	"github.com/suparena/smartcare/errors"
	"github.com/suparena/smartcare/fallback"
	"github.com/suparena/smartcare/language"
	"github.com/suparena/smartcare/seed"
	"github.com/suparena/smartcare/storagemodels"
)

// BackendOptions is handed to a BackendFactory.
type BackendOptions struct {
	Store     config.StoreConfig
	Languages language.Set
	Logger    *zap.Logger
}

// BackendFactory opens a document store.
type BackendFactory func(ctx context.Context, opts BackendOptions) (datastore.DocumentStore, error)

// Backends is a thread-safe registry of named document store factories.
type Backends struct {
	mu        sync.RWMutex
	factories map[string]BackendFactory
}

// NewBackends returns an empty registry.
func NewBackends() *Backends {
	return &Backends{factories: make(map[string]BackendFactory)}
}

// DefaultBackends registers the dynamodb, memory and none backends.
func DefaultBackends() *Backends {
	b := NewBackends()
	_ = b.Register(config.BackendDynamoDB, openDynamoDB)
	_ = b.Register(config.BackendMemory, openMemory)
	_ = b.Register(config.BackendNone, openNone)
	return b
}

// Register stores the factory under name.
func (b *Backends) Register(name string, factory BackendFactory) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.factories[name]; exists {
		return fmt.Errorf("backend %q already registered", name)
	}
	b.factories[name] = factory
	return nil
}

// Open runs the factory registered under name.
func (b *Backends) Open(ctx context.Context, name string, opts BackendOptions) (datastore.DocumentStore, error) {
	b.mu.RLock()
	factory, exists := b.factories[name]
	b.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("backend %q not found", name)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return factory(ctx, opts)
}

// Names lists the registered backends in sorted order.
func (b *Backends) Names() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	names := make([]string, 0, len(b.factories))
	for name := range b.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func openDynamoDB(ctx context.Context, opts BackendOptions) (datastore.DocumentStore, error) {
	if opts.Store.Table == "" {
		return nil, errors.NewValidationError("store.table", "a table is required for the dynamodb backend")
	}
	client, err := ddb.NewDynamoDBClient(ctx, ddb.ClientConfig{
		Region:    opts.Store.Region,
		AccessKey: opts.Store.AccessKey,
		SecretKey: opts.Store.SecretKey,
		Endpoint:  opts.Store.Endpoint,
	})
	if err != nil {
		return nil, err
	}
	return ddb.NewDynamodbDataStore(client, opts.Store.Table,
		ddb.WithListOptions(storagemodels.WithPageSize(opts.Store.PageSize)),
	), nil
}

// openMemory returns an in-process store preloaded with the bundled seed
// content.
func openMemory(ctx context.Context, opts BackendOptions) (datastore.DocumentStore, error) {
	set, err := fallback.LoadSeed()
	if err != nil {
		return nil, err
	}
	store := mock.New()
	summary, err := seed.New(datastore.NewClient(store, opts.Store.Timeout), opts.Languages,
		seed.WithLogger(opts.Logger)).Run(ctx, set)
	if err != nil {
		return nil, fmt.Errorf("failed to seed memory store: %w", err)
	}
	opts.Logger.Debug("memory store seeded", zap.Int("documents", summary.Total()))
	return store, nil
}

func openNone(_ context.Context, _ BackendOptions) (datastore.DocumentStore, error) {
	return datastore.NewUnavailable(nil), nil
}
