// Package store defines the permanent storage of setting values.
//
// Values are kept in a bbolt database file, so that a device configuration
// survives between sessions. The rest of the program depends only on the API
// in storedefs.
package store

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/humidscope/setedit/pkg/logutil"
	"github.com/humidscope/setedit/pkg/store/storedefs"
)

var logger = logutil.GetLogger("store")

const (
	bucketValue = "value"
	bucketMeta  = "meta"
)

// DBStore is the permanent storage backend. It is not safe for concurrent use
// with Close.
type DBStore interface {
	storedefs.Store
	Close() error
}

var initDB = map[string](func(*bolt.Tx) error){}

type dbStore struct {
	db *bolt.DB
}

func dbWithDefaultOptions(dbname string) (*bolt.DB, error) {
	db, err := bolt.Open(dbname, 0644,
		&bolt.Options{
			Timeout: 1 * time.Second,
		})
	return db, err
}

// NewStore creates a new Store from the given file.
func NewStore(dbname string) (DBStore, error) {
	db, err := dbWithDefaultOptions(dbname)
	if err != nil {
		return nil, err
	}
	st, err := NewStoreFromDB(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return st, nil
}

// NewStoreFromDB creates a new Store from a bolt DB.
func NewStoreFromDB(db *bolt.DB) (DBStore, error) {
	logger.Debug("initializing store")
	defer logger.Debug("initialized store")
	st := &dbStore{db: db}

	err := db.Update(func(tx *bolt.Tx) error {
		for name, fn := range initDB {
			err := fn(tx)
			if err != nil {
				return fmt.Errorf("failed to %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := st.checkSchemaVersion(); err != nil {
		return nil, err
	}
	return st, nil
}

// Close closes the store.
func (s *dbStore) Close() error {
	return s.db.Close()
}
