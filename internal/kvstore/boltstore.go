package kvstore

import (
	"fmt"
	"strings"

	bolt "go.etcd.io/bbolt"
)

// bucketName is the single bucket every mapping lives in. The engine has no
// notion of multiple namespaces per store, so one bucket is sufficient.
var bucketName = []byte("vpathrepo")

// BoltStore is a Store persisted to a single go.etcd.io/bbolt database file,
// grounded on canonical-snapd's direct dependency on bbolt for its own state
// database. Each Set/Remove commits its own bbolt transaction; the core's
// non-goal of "transactional durability across mutations" (spec.md §1)
// means callers never span multiple Store calls inside one bbolt Tx.
type BoltStore struct {
	db *bolt.DB
}

// OpenBoltStore opens (creating if necessary) a bbolt database at path and
// ensures the mapping bucket exists, anchoring "/" with an empty stack on
// first use.
func OpenBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("opening bolt store %q: %w", path, err)
	}

	s := &BoltStore{db: db}
	err = db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketName)
		if err != nil {
			return fmt.Errorf("creating bucket: %w", err)
		}
		if b.Get([]byte("/")) == nil {
			if err := b.Put([]byte("/"), encodeValue(nil)); err != nil {
				return fmt.Errorf("anchoring root key: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the underlying bbolt database file.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

func (s *BoltStore) Exists(key string) bool {
	_, ok := s.Get(key)
	return ok
}

func (s *BoltStore) Get(key string) ([]string, bool) {
	var value []string
	var found bool
	_ = s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		if b == nil {
			return nil
		}
		raw := b.Get([]byte(key))
		if raw == nil {
			return nil
		}
		found = true
		value = decodeValue(raw)
		return nil
	})
	return value, found
}

func (s *BoltStore) Set(key string, value []string) {
	_ = s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketName)
		if err != nil {
			return err
		}
		return b.Put([]byte(key), encodeValue(value))
	})
}

func (s *BoltStore) Remove(key string) bool {
	existed := s.Exists(key)
	_ = s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		if b == nil {
			return nil
		}
		return b.Delete([]byte(key))
	})
	return existed
}

func (s *BoltStore) Keys() []string {
	var keys []string
	_ = s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	return keys
}

// encodeValue/decodeValue join the target-stack string list with newlines.
// Filesystem-relative paths and "l:"-prefixed link targets never legally
// contain a newline, so this round-trips the on-disk encoding bit-exactly.
func encodeValue(value []string) []byte {
	if len(value) == 0 {
		return []byte{}
	}
	return []byte(strings.Join(value, "\n"))
}

func decodeValue(raw []byte) []string {
	if len(raw) == 0 {
		return []string{}
	}
	return strings.Split(string(raw), "\n")
}
