package storage

import (
	"github.com/spikeekips/confgov/util/errors"
)

var (
	NotFoundError     = errors.NewError("not found in storage")
	StorageError      = errors.NewError("storage error")
	AlreadyCommitted  = errors.NewError("fork already committed")
)

// Reader is the read-only view over chain state. Get returns the stored
// value, or found=false when the key was never written.
type Reader interface {
	Get(key []byte) (value []byte, found bool, err error)
}

// Fork is one mutable, isolated view of chain state accumulated during one
// block. Reads see the fork's own writes first, then the underlying
// committed state. All mutations are merged into canonical storage
// atomically, or not at all.
type Fork interface {
	Reader
	Put(key, value []byte) error
	Delete(key []byte) error
}
