package store

import (
	"errors"
	"fmt"
	"strconv"

	bolt "go.etcd.io/bbolt"
)

// SchemaVersion is the version of the on-disk layout written by this package.
const SchemaVersion = 1

var keySchemaVersion = []byte("schema_version")

// ErrSchemaTooNew is returned when opening a database written by a newer
// version of this package.
var ErrSchemaTooNew = errors.New("database schema is newer than supported")

func init() {
	initDB["record schema version"] = func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucketMeta))
		if err != nil {
			return err
		}
		if b.Get(keySchemaVersion) != nil {
			return nil
		}
		return b.Put(keySchemaVersion, []byte(strconv.Itoa(SchemaVersion)))
	}
}

func (s *dbStore) checkSchemaVersion() error {
	return s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketMeta)).Get(keySchemaVersion)
		n, err := strconv.Atoi(string(v))
		if err != nil {
			return fmt.Errorf("bad schema version %q: %w", v, err)
		}
		if n > SchemaVersion {
			return fmt.Errorf("%w: %d > %d", ErrSchemaTooNew, n, SchemaVersion)
		}
		return nil
	})
}
