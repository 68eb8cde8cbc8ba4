/*
Package datastore defines the document store boundary used by the content layer.

The main interface is DocumentStore, a collection/document-ID keyed store:

	type DocumentStore interface {
	    Get(ctx context.Context, collection, id string) (storagemodels.Document, error)
	    List(ctx context.Context, collection string) ([]storagemodels.Record, error)
	    Set(ctx context.Context, collection, id string, doc storagemodels.Document, merge bool) error
	    Delete(ctx context.Context, collection, id string) error
	}

Client wraps a DocumentStore with a bounded per-call timeout and turns every read
into a storagemodels.Result that distinguishes found, not-found and unavailable.
A timeout is classified as unavailable.

Implementations:
  - ddb: DynamoDB implementation using a single table keyed by collection and ID
  - mock: In-memory implementation for tests and offline runs
  - Unavailable: reports every call as unavailable; used when no backend is configured
*/
package datastore
