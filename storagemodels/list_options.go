/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import "time"

// ListOptions configures how a backend pages through a collection
type ListOptions struct {
	PageSize     int32         // Items per backend page (default: 100)
	MaxRetries   int           // Retry attempts for transient errors (default: 3)
	RetryBackoff time.Duration // Backoff between retries, multiplied by attempt (default: 200ms)
}

// ListOption is a functional option for configuring listing
type ListOption func(*ListOptions)

// DefaultListOptions returns default listing options
func DefaultListOptions() ListOptions {
	return ListOptions{
		PageSize:     100,
		MaxRetries:   3,
		RetryBackoff: 200 * time.Millisecond,
	}
}

// WithPageSize sets the backend page size
func WithPageSize(size int32) ListOption {
	return func(opts *ListOptions) {
		if size > 0 {
			opts.PageSize = size
		}
	}
}

// WithMaxRetries sets the maximum retry attempts
func WithMaxRetries(retries int) ListOption {
	return func(opts *ListOptions) {
		if retries >= 0 {
			opts.MaxRetries = retries
		}
	}
}

// WithRetryBackoff sets the retry backoff duration
func WithRetryBackoff(backoff time.Duration) ListOption {
	return func(opts *ListOptions) {
		opts.RetryBackoff = backoff
	}
}
