// Package sitestore holds the materialized read view: one append-only
// sequence of encoded readings per site key.
package sitestore

import "context"

// Store is the per-site entity store. Append is order-preserving per key;
// List returns every value for a key in append order. A key with no values
// lists as empty, not as an error.
type Store interface {
	Append(ctx context.Context, siteID string, value []byte) error
	List(ctx context.Context, siteID string) ([][]byte, error)
}
