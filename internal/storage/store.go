// Package storage holds the string keyed stores the client persists its cart
// and session token in.
package storage

import (
	"context"
)

// Store is an asynchronous string keyed storage. Get reports found=false for
// an absent key; a non-nil error means the backend itself failed.
type Store interface {
	Get(c context.Context, key string) (value string, found bool, err error)
	Set(c context.Context, key string, value string) error
	Remove(c context.Context, key string) error
}
