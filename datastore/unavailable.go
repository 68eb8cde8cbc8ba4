/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"

	"github.com/suparena/smartcare/errors"
	"github.com/suparena/smartcare/storagemodels"
)

// Unavailable is a DocumentStore that reports every call as unavailable. It
// stands in when no backend is configured so the site runs on fallback data.
type Unavailable struct {
	Reason error
}

// NewUnavailable returns a store that always fails with reason.
func NewUnavailable(reason error) *Unavailable {
	return &Unavailable{Reason: reason}
}

func (u *Unavailable) Get(ctx context.Context, collection, id string) (storagemodels.Document, error) {
	return nil, errors.NewUnavailableError("get", u.Reason)
}

func (u *Unavailable) List(ctx context.Context, collection string) ([]storagemodels.Record, error) {
	return nil, errors.NewUnavailableError("list", u.Reason)
}

func (u *Unavailable) Set(ctx context.Context, collection, id string, doc storagemodels.Document, merge bool) error {
	return errors.NewUnavailableError("set", u.Reason)
}

func (u *Unavailable) Delete(ctx context.Context, collection, id string) error {
	return errors.NewUnavailableError("delete", u.Reason)
}
