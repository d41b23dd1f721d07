package storage

import (
	"github.com/rs/zerolog"
	"github.com/syndtr/goleveldb/leveldb"
	leveldbErrors "github.com/syndtr/goleveldb/leveldb/errors"
	leveldbStorage "github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/spikeekips/confgov/util/logging"
)

type Database struct {
	*logging.Logging
	db *leveldb.DB
}

func NewDatabase(db *leveldb.DB) *Database {
	return &Database{
		Logging: logging.NewLogging(func(c zerolog.Context) zerolog.Context {
			return c.Str("module", "leveldb-database")
		}),
		db: db,
	}
}

func NewMemDatabase() *Database {
	db, _ := leveldb.Open(leveldbStorage.NewMemStorage(), nil)
	return NewDatabase(db)
}

func (st *Database) DB() *leveldb.DB {
	return st.db
}

func (st *Database) Close() error {
	return st.db.Close()
}

func (st *Database) Get(key []byte) ([]byte, bool, error) {
	switch b, err := st.db.Get(key, nil); {
	case err == nil:
		return b, true, nil
	case err == leveldbErrors.ErrNotFound:
		return nil, false, nil
	default:
		return nil, false, StorageError.Wrap(err)
	}
}

// Snapshot returns the read-only view of the committed state as of the last
// completed block.
func (st *Database) Snapshot() (Reader, error) {
	sn, err := st.db.GetSnapshot()
	if err != nil {
		return nil, StorageError.Wrap(err)
	}

	return &dbSnapshot{sn: sn}, nil
}

// NewFork opens a mutable fork over the current committed state.
func (st *Database) NewFork() *BaseFork {
	return NewBaseFork(st)
}

// Commit merges the fork into canonical storage as one batch.
func (st *Database) Commit(fork *BaseFork) error {
	batch, err := fork.batch()
	if err != nil {
		return err
	}

	if err := st.db.Write(batch, nil); err != nil {
		return StorageError.Wrap(err)
	}

	st.Log().Debug().Int("ops", batch.Len()).Msg("fork committed")

	return nil
}

type dbSnapshot struct {
	sn *leveldb.Snapshot
}

func (sn *dbSnapshot) Get(key []byte) ([]byte, bool, error) {
	switch b, err := sn.sn.Get(key, nil); {
	case err == nil:
		return b, true, nil
	case err == leveldbErrors.ErrNotFound:
		return nil, false, nil
	default:
		return nil, false, StorageError.Wrap(err)
	}
}
