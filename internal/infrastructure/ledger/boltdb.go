package ledger

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/fastygo/tasknotify/domain"
	"github.com/fastygo/tasknotify/repository"
)

// Store is a BoltDB notification ledger for single-node deployments.
type Store struct {
	db     *bolt.DB
	bucket []byte
}

type entry struct {
	DueDate    time.Time `json:"due_date"`
	NotifiedAt time.Time `json:"notified_at"`
}

var _ repository.NotificationLedger = (*Store)(nil)

// Open initializes the BoltDB file and ensures the bucket exists.
func Open(path string, bucket string) (*Store, error) {
	if bucket == "" {
		bucket = "notified"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{
		db:     db,
		bucket: []byte(bucket),
	}, nil
}

func (s *Store) LastNotified(_ context.Context, taskID string) (time.Time, error) {
	if s == nil || s.db == nil {
		return time.Time{}, bolt.ErrDatabaseNotOpen
	}

	var (
		rec   entry
		found bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(s.bucket).Get([]byte(taskID))
		if raw == nil {
			return nil
		}
		found = true
		return json.Unmarshal(raw, &rec)
	})
	if err != nil {
		return time.Time{}, err
	}
	if !found {
		return time.Time{}, domain.ErrNotNotified
	}
	return rec.DueDate, nil
}

func (s *Store) MarkNotified(_ context.Context, taskID string, dueDate time.Time) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	if taskID == "" {
		return domain.ErrInvalidPayload
	}

	payload, err := json.Marshal(entry{DueDate: dueDate.UTC(), NotifiedAt: time.Now().UTC()})
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Put([]byte(taskID), payload)
	})
}

func (s *Store) Ping(_ context.Context) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return s.db.View(func(tx *bolt.Tx) error {
		if tx.Bucket(s.bucket) == nil {
			return bolt.ErrBucketNotFound
		}
		return nil
	})
}

// Size returns the number of recorded notifications.
func (s *Store) Size() (int, error) {
	if s == nil || s.db == nil {
		return 0, bolt.ErrDatabaseNotOpen
	}
	var count int
	err := s.db.View(func(tx *bolt.Tx) error {
		count = tx.Bucket(s.bucket).Stats().KeyN
		return nil
	})
	return count, err
}

// Cleanup removes entries notified before olderThan and returns how many were dropped.
func (s *Store) Cleanup(olderThan time.Time) (int, error) {
	if s == nil || s.db == nil {
		return 0, bolt.ErrDatabaseNotOpen
	}
	var removed int
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		var stale [][]byte
		if err := b.ForEach(func(k, v []byte) error {
			var rec entry
			if err := json.Unmarshal(v, &rec); err != nil {
				return nil
			}
			if rec.NotifiedAt.Before(olderThan) {
				stale = append(stale, append([]byte(nil), k...))
			}
			return nil
		}); err != nil {
			return err
		}
		for _, k := range stale {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		removed = len(stale)
		return nil
	})
	return removed, err
}

// Close closes the Bolt database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
