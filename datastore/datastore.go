/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"

	"github.com/suparena/smartcare/storagemodels"
)

// DocumentStore is the remote document database boundary. Implementations
// return errors.ErrNotFound for a missing document and errors.ErrUnavailable
// for anything that kept the store from answering.
type DocumentStore interface {
	Get(ctx context.Context, collection, id string) (storagemodels.Document, error)

	List(ctx context.Context, collection string) ([]storagemodels.Record, error)

	// Set writes doc under (collection, id). With merge, top-level fields of
	// doc replace those of the stored document and other fields are kept.
	Set(ctx context.Context, collection, id string, doc storagemodels.Document, merge bool) error

	Delete(ctx context.Context, collection, id string) error
}
