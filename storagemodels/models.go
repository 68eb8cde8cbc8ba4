/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

// Document is the field mapping held by one stored document. Values are
// scalars, nested map[string]any mappings or []any sequences.
type Document map[string]any

// Clone returns a shallow copy of d. Nested values are shared.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// String returns the field as a string, or "" if it is absent or not a string.
func (d Document) String(field string) string {
	s, _ := d[field].(string)
	return s
}

// Record pairs a document with its ID inside a collection.
type Record struct {
	ID       string
	Document Document
}

// Status classifies the outcome of a store call.
type Status int

const (
	// StatusFound means the store answered with a value.
	StatusFound Status = iota
	// StatusNotFound means a reachable store holds nothing for the key.
	StatusNotFound
	// StatusUnavailable means the store could not be consulted.
	StatusUnavailable
)

func (s Status) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusNotFound:
		return "not_found"
	case StatusUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Result is the classified outcome of a store call. Err is set for
// StatusUnavailable and carries the underlying cause.
type Result[T any] struct {
	Value  T
	Status Status
	Err    error
}

// Found reports whether the result carries a value.
func (r Result[T]) Found() bool {
	return r.Status == StatusFound
}
