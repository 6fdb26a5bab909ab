// Package localstore is the device-local persistence the client core
// writes through: opaque JSON blobs under string keys. Read/write
// failures here are PersistenceErrors in the app taxonomy: logged,
// never surfaced, never blocking an in-memory operation.
package localstore

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("key not found")

// KV is the storage contract. Implementations must tolerate concurrent
// use from the write queue and the UI goroutine.
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Remove(key string) error
}

// PersistenceError wraps a storage failure with the key it concerned.
type PersistenceError struct {
	Key string
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("localstore %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
