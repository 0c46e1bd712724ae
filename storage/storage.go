// Package storage holds the key/value backends the trade store persists to.
// A backend stores opaque values under string keys, the way browser local
// storage does; the store owns the encoding.
package storage

import "errors"

// ErrNotFound is returned by Get when no value is stored under the key.
var ErrNotFound = errors.New("storage: key not found")

// KV is a synchronous key/value store. Set replaces the whole value in one
// step: a Get after a successful Set returns exactly what was set.
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Close() error
}
