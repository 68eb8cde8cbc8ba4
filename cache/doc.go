// Package cache memoizes content results by operation and language with a
// time-based expiry. Writes and language changes clear it wholesale through
// InvalidateAll.
package cache
