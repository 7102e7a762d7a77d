package prefstore

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"tooldir/internal/domain"
)

const (
	updatedAtKey   = "__updated_at"
	reservedPrefix = "__"
)

// Backend is a durable key-value medium for preference slots.
type Backend interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
	Delete(key string) error
	Keys() ([]string, error)
	Close() error
}

// Store keeps preference slots in a bbolt database.
type Store struct {
	mu     sync.RWMutex
	db     *bolt.DB
	path   string
	closed bool
}

var _ Backend = (*Store)(nil)

func OpenStore(path string) (*Store, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, fmt.Errorf("preferences path is required")
	}
	if err := os.MkdirAll(filepath.Dir(trimmed), 0o755); err != nil {
		return nil, fmt.Errorf("ensure preferences dir: %w", err)
	}
	options := &bolt.Options{Timeout: time.Second}
	base, err := bolt.Open(trimmed, 0o600, options)
	if err != nil {
		return nil, fmt.Errorf("open preferences db: %w", err)
	}
	if err := ensureSchema(base); err != nil {
		_ = base.Close()
		return nil, err
	}
	return &Store{db: base, path: trimmed}, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

func (s *Store) Get(key string) ([]byte, bool, error) {
	if err := validateSlotKey(key); err != nil {
		return nil, false, err
	}
	var (
		value []byte
		found bool
	)
	err := s.view(func(tx *bolt.Tx) error {
		bucket, err := slotsBucket(tx)
		if err != nil {
			return err
		}
		raw := bucket.Get([]byte(key))
		if raw == nil {
			return nil
		}
		value = append([]byte(nil), raw...)
		found = true
		return nil
	})
	return value, found, err
}

func (s *Store) Put(key string, value []byte) error {
	if err := validateSlotKey(key); err != nil {
		return err
	}
	if value == nil {
		return fmt.Errorf("slot value is nil for %s", key)
	}
	return s.update(func(tx *bolt.Tx) error {
		bucket, err := slotsBucket(tx)
		if err != nil {
			return err
		}
		if err := bucket.Put([]byte(key), value); err != nil {
			return fmt.Errorf("write slot %s: %w", key, err)
		}
		return writeUpdatedAt(bucket)
	})
}

func (s *Store) Delete(key string) error {
	if err := validateSlotKey(key); err != nil {
		return err
	}
	return s.update(func(tx *bolt.Tx) error {
		bucket, err := slotsBucket(tx)
		if err != nil {
			return err
		}
		if err := bucket.Delete([]byte(key)); err != nil {
			return fmt.Errorf("delete slot %s: %w", key, err)
		}
		return writeUpdatedAt(bucket)
	})
}

func (s *Store) Keys() ([]string, error) {
	var keys []string
	err := s.view(func(tx *bolt.Tx) error {
		bucket, err := slotsBucket(tx)
		if err != nil {
			return err
		}
		return bucket.ForEach(func(key, value []byte) error {
			if value == nil || isReservedKey(key) {
				return nil
			}
			keys = append(keys, string(key))
			return nil
		})
	})
	sort.Strings(keys)
	return keys, err
}

// UpdatedAt returns the RFC 3339 time of the last write, or "" if nothing was written.
func (s *Store) UpdatedAt() (string, error) {
	var updatedAt string
	err := s.view(func(tx *bolt.Tx) error {
		bucket, err := slotsBucket(tx)
		if err != nil {
			return err
		}
		updatedAt = string(bucket.Get([]byte(updatedAtKey)))
		return nil
	})
	return updatedAt, err
}

func (s *Store) view(fn func(*bolt.Tx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return domain.ErrStoreClosed
	}
	return s.db.View(fn)
}

func (s *Store) update(fn func(*bolt.Tx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return domain.ErrStoreClosed
	}
	return s.db.Update(fn)
}

func validateSlotKey(key string) error {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" || strings.HasPrefix(trimmed, reservedPrefix) {
		return domain.ErrInvalidSlotKey
	}
	return nil
}

func slotsBucket(tx *bolt.Tx) (*bolt.Bucket, error) {
	root := tx.Bucket([]byte(rootBucketName))
	if root == nil {
		return nil, fmt.Errorf("missing root bucket")
	}
	bucket := root.Bucket([]byte(slotsBucketName))
	if bucket == nil {
		return nil, fmt.Errorf("missing slots bucket")
	}
	return bucket, nil
}

func writeUpdatedAt(bucket *bolt.Bucket) error {
	value := time.Now().UTC().Format(time.RFC3339Nano)
	return bucket.Put([]byte(updatedAtKey), []byte(value))
}

func isReservedKey(key []byte) bool {
	return strings.HasPrefix(string(key), reservedPrefix)
}
