// Package kv provides the key-value capability the core services use for
// their persisted state (categorization cache, currency rate cache, plan
// working set), keeping them storage-agnostic.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = errors.New("key not found")

//go:generate mockgen -source=kv.go -destination=store_mock.go -package=kv
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
