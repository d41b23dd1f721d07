package storage

import (
	"sync"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/spikeekips/confgov/util"
)

// BaseFork buffers writes over the committed state. Reads are
// read-your-writes; nothing touches the underlying database until Commit.
type BaseFork struct {
	sync.RWMutex
	base      Reader
	overlay   map[string][]byte
	committed bool
}

func NewBaseFork(base Reader) *BaseFork {
	return &BaseFork{
		base:    base,
		overlay: map[string][]byte{},
	}
}

func (fk *BaseFork) Get(key []byte) ([]byte, bool, error) {
	fk.RLock()
	defer fk.RUnlock()

	if b, found := fk.overlay[string(key)]; found {
		if b == nil { // deleted inside this fork
			return nil, false, nil
		}

		return util.CopyBytes(b), true, nil
	}

	return fk.base.Get(key)
}

func (fk *BaseFork) Put(key, value []byte) error {
	fk.Lock()
	defer fk.Unlock()

	if fk.committed {
		return AlreadyCommitted.Errorf("key=%x", key)
	}

	if value == nil {
		value = []byte{}
	}

	fk.overlay[string(key)] = util.CopyBytes(value)

	return nil
}

func (fk *BaseFork) Delete(key []byte) error {
	fk.Lock()
	defer fk.Unlock()

	if fk.committed {
		return AlreadyCommitted.Errorf("key=%x", key)
	}

	fk.overlay[string(key)] = nil

	return nil
}

// Discard drops the buffered mutations; the fork can not be used again.
func (fk *BaseFork) Discard() {
	fk.Lock()
	defer fk.Unlock()

	fk.overlay = map[string][]byte{}
	fk.committed = true
}

func (fk *BaseFork) batch() (*leveldb.Batch, error) {
	fk.Lock()
	defer fk.Unlock()

	if fk.committed {
		return nil, AlreadyCommitted.Errorf("batch")
	}

	batch := new(leveldb.Batch)
	for k, v := range fk.overlay {
		if v == nil {
			batch.Delete([]byte(k))

			continue
		}

		batch.Put([]byte(k), v)
	}

	fk.committed = true

	return batch, nil
}
