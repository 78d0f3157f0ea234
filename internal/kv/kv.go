// Package kv is the storefront's persistence layer: a flat key/value blob
// store. Each domain store serializes its entire record list under a single
// key and replaces it wholesale on every mutation, so a backend only ever
// needs get/set/delete semantics.
package kv

import "context"

type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}
