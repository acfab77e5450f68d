package store

import (
	"fmt"
	"strings"

	bolt "go.etcd.io/bbolt"

	. "github.com/humidscope/setedit/pkg/store/storedefs"
)

func init() {
	initDB["initialize value table"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketValue))
		return err
	}
}

// Values are stored as kind, a colon, and the text. Kinds never contain a
// colon, so the first one is the separator.
func marshalValue(v Value) []byte {
	return []byte(v.Kind + ":" + v.Text)
}

func unmarshalValue(data []byte) (Value, error) {
	kind, text, ok := strings.Cut(string(data), ":")
	if !ok {
		return Value{}, fmt.Errorf("malformed stored value %q", data)
	}
	return Value{Kind: kind, Text: text}, nil
}

// Value gets the value stored under a name.
func (s *dbStore) Value(name string) (Value, error) {
	var value Value
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketValue))
		data := b.Get([]byte(name))
		if data == nil {
			return ErrNoValue
		}
		var err error
		value, err = unmarshalValue(data)
		return err
	})
	return value, err
}

// SetValue stores a value under a name, replacing any existing one.
func (s *dbStore) SetValue(name string, v Value) error {
	if strings.Contains(v.Kind, ":") {
		return fmt.Errorf("invalid kind %q", v.Kind)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketValue))
		return b.Put([]byte(name), marshalValue(v))
	})
}

// DelValue deletes the value stored under a name. Deleting a name that has no
// value is not an error.
func (s *dbStore) DelValue(name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketValue))
		return b.Delete([]byte(name))
	})
}

// Names returns the names of all stored values, in byte order.
func (s *dbStore) Names() ([]string, error) {
	var names []string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketValue))
		return b.ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	return names, err
}
