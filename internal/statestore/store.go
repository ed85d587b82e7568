// Package statestore is the durable client-local storage behind the
// session blob and the pending-booking draft. The default backend keeps
// one JSON file per key in the user's state directory; kiosk terminals
// that share state between processes can point at Redis instead.
package statestore

import (
	"context"
	"errors"
)

// Fixed keys. Exactly one session blob and one pending-booking draft
// exist per terminal.
const (
	KeySession        = "auth-storage"
	KeyPendingBooking = "pendingBooking"
)

// ErrNotFound is returned when the key has no stored value.
var ErrNotFound = errors.New("statestore: key not found")

// Store is the durable key/value contract shared by both backends.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
