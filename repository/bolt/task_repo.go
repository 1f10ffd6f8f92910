package bolt

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	bbolt "go.etcd.io/bbolt"

	"github.com/fastygo/todo/domain"
	"github.com/fastygo/todo/repository"
)

// record is the document persisted per task. Seq preserves insertion order
// because keys are random identifiers.
type record struct {
	Seq uint64 `json:"seq"`
	repository.TaskFields
}

// Store persists task documents in a single BoltDB bucket.
type Store struct {
	db     *bbolt.DB
	bucket []byte
}

var _ repository.TaskStore = (*Store)(nil)

// Open initializes the BoltDB file and ensures the bucket exists.
func Open(path string, bucket string) (*Store, error) {
	if bucket == "" {
		bucket = "tasks"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
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

func (s *Store) List(ctx context.Context) ([]domain.Task, error) {
	if s == nil || s.db == nil {
		return nil, bbolt.ErrDatabaseNotOpen
	}

	type entry struct {
		seq  uint64
		task domain.Task
	}
	var entries []entry
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(s.bucket).ForEach(func(k, v []byte) error {
			var rec record
			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}
			entries = append(entries, entry{
				seq: rec.Seq,
				task: domain.Task{
					ID:        string(k),
					Text:      rec.Text,
					Completed: rec.Completed,
					Deadline:  rec.Deadline,
				},
			})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })
	tasks := make([]domain.Task, len(entries))
	for i, e := range entries {
		tasks[i] = e.task
	}
	return tasks, nil
}

func (s *Store) Create(ctx context.Context, fields repository.TaskFields) (string, error) {
	if s == nil || s.db == nil {
		return "", bbolt.ErrDatabaseNotOpen
	}
	id := uuid.NewString()
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(s.bucket)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		payload, err := json.Marshal(record{Seq: seq, TaskFields: fields})
		if err != nil {
			return err
		}
		return b.Put([]byte(id), payload)
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) Update(ctx context.Context, id string, patch domain.TaskPatch) error {
	if s == nil || s.db == nil {
		return bbolt.ErrDatabaseNotOpen
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(s.bucket)
		raw := b.Get([]byte(id))
		if raw == nil {
			return domain.ErrTaskNotFound
		}
		var rec record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return err
		}
		if patch.Text != nil {
			rec.Text = *patch.Text
		}
		if patch.Completed != nil {
			rec.Completed = *patch.Completed
		}
		if patch.Deadline != nil {
			rec.Deadline = *patch.Deadline
		}
		payload, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		return b.Put([]byte(id), payload)
	})
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if s == nil || s.db == nil {
		return bbolt.ErrDatabaseNotOpen
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if b.Get([]byte(id)) == nil {
			return domain.ErrTaskNotFound
		}
		return b.Delete([]byte(id))
	})
}

// Ping verifies the database is still open.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.db == nil {
		return bbolt.ErrDatabaseNotOpen
	}
	return s.db.View(func(tx *bbolt.Tx) error { return nil })
}

// Size returns the number of stored tasks.
func (s *Store) Size() (int, error) {
	if s == nil || s.db == nil {
		return 0, bbolt.ErrDatabaseNotOpen
	}
	var count int
	err := s.db.View(func(tx *bbolt.Tx) error {
		count = tx.Bucket(s.bucket).Stats().KeyN
		return nil
	})
	return count, err
}

// Close closes the Bolt database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
