/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"
	"time"

	"github.com/suparena/smartcare/errors"
	"github.com/suparena/smartcare/storagemodels"
)

// DefaultTimeout bounds every store call made through a Client.
const DefaultTimeout = 3 * time.Second

// Client wraps a DocumentStore, bounds each call with a timeout and
// classifies reads into storagemodels.Result values.
type Client struct {
	store   DocumentStore
	timeout time.Duration
}

// NewClient wraps store. A non-positive timeout selects DefaultTimeout.
func NewClient(store DocumentStore, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{store: store, timeout: timeout}
}

// Available reports whether a real backend is attached.
func (c *Client) Available() bool {
	if c == nil || c.store == nil {
		return false
	}
	_, unavailable := c.store.(*Unavailable)
	return !unavailable
}

// Get fetches one document.
func (c *Client) Get(ctx context.Context, collection, id string) storagemodels.Result[storagemodels.Document] {
	if c == nil || c.store == nil {
		return unavailable[storagemodels.Document]("get", nil)
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	doc, err := c.store.Get(ctx, collection, id)
	if err != nil {
		return classify[storagemodels.Document]("get", err)
	}
	if doc == nil {
		return storagemodels.Result[storagemodels.Document]{Status: storagemodels.StatusNotFound}
	}
	return storagemodels.Result[storagemodels.Document]{Value: doc, Status: storagemodels.StatusFound}
}

// List fetches every document of a collection. An empty collection is
// reported as StatusNotFound.
func (c *Client) List(ctx context.Context, collection string) storagemodels.Result[[]storagemodels.Record] {
	if c == nil || c.store == nil {
		return unavailable[[]storagemodels.Record]("list", nil)
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	records, err := c.store.List(ctx, collection)
	if err != nil {
		return classify[[]storagemodels.Record]("list", err)
	}
	if len(records) == 0 {
		return storagemodels.Result[[]storagemodels.Record]{Status: storagemodels.StatusNotFound}
	}
	return storagemodels.Result[[]storagemodels.Record]{Value: records, Status: storagemodels.StatusFound}
}

// Set writes a document. Errors other than validation are reported as
// unavailable.
func (c *Client) Set(ctx context.Context, collection, id string, doc storagemodels.Document, merge bool) error {
	if c == nil || c.store == nil {
		return errors.NewUnavailableError("set", nil)
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return normalizeWriteError("set", c.store.Set(ctx, collection, id, doc, merge))
}

// Delete removes a document.
func (c *Client) Delete(ctx context.Context, collection, id string) error {
	if c == nil || c.store == nil {
		return errors.NewUnavailableError("delete", nil)
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return normalizeWriteError("delete", c.store.Delete(ctx, collection, id))
}

func classify[T any](op string, err error) storagemodels.Result[T] {
	if errors.IsNotFound(err) {
		return storagemodels.Result[T]{Status: storagemodels.StatusNotFound}
	}
	if errors.IsUnavailable(err) {
		return storagemodels.Result[T]{Status: storagemodels.StatusUnavailable, Err: err}
	}
	return unavailable[T](op, err)
}

func unavailable[T any](op string, err error) storagemodels.Result[T] {
	return storagemodels.Result[T]{
		Status: storagemodels.StatusUnavailable,
		Err:    errors.NewUnavailableError(op, err),
	}
}

func normalizeWriteError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.IsUnavailable(err), errors.IsNotFound(err), errors.IsValidationError(err):
		return err
	default:
		return errors.NewUnavailableError(op, err)
	}
}
