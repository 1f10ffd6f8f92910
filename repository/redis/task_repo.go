package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"

	"github.com/fastygo/todo/domain"
	"github.com/fastygo/todo/repository"
)

// maxUpdateAttempts bounds how often Update re-reads a document whose key
// changed between read and write.
const maxUpdateAttempts = 3

// taskStore keeps each task as a JSON string under prefix+id and tracks
// insertion order in a sorted set scored by a creation counter.
type taskStore struct {
	client *redislib.Client
	prefix string
	index  string
	seq    string

	// beforeWrite runs between the read and the write of Update.
	beforeWrite func(id string)
}

// NewTaskStore creates a Redis-backed TaskStore. An empty namespace defaults to "todo".
func NewTaskStore(client *redislib.Client, namespace string) repository.TaskStore {
	if namespace == "" {
		namespace = "todo"
	}
	return &taskStore{
		client: client,
		prefix: namespace + ":task:",
		index:  namespace + ":tasks",
		seq:    namespace + ":seq",
	}
}

func (s *taskStore) List(ctx context.Context) ([]domain.Task, error) {
	ids, err := s.client.ZRange(ctx, s.index, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	tasks := make([]domain.Task, 0, len(ids))
	if len(ids) == 0 {
		return tasks, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.key(id)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			// index entry without a document; skip it
			continue
		}
		var fields repository.TaskFields
		if err := json.Unmarshal([]byte(raw), &fields); err != nil {
			return nil, fmt.Errorf("decode task %s: %w", ids[i], err)
		}
		tasks = append(tasks, domain.Task{
			ID:        ids[i],
			Text:      fields.Text,
			Completed: fields.Completed,
			Deadline:  fields.Deadline,
		})
	}
	return tasks, nil
}

func (s *taskStore) Create(ctx context.Context, fields repository.TaskFields) (string, error) {
	payload, err := json.Marshal(fields)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	order, err := s.client.Incr(ctx, s.seq).Result()
	if err != nil {
		return "", err
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redislib.Pipeliner) error {
		pipe.Set(ctx, s.key(id), payload, 0)
		pipe.ZAdd(ctx, s.index, redislib.Z{Score: float64(order), Member: id})
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// Update merges patch into the stored document. The write is watched, so a
// concurrent Delete makes it fail with ErrTaskNotFound instead of recreating
// a document the index no longer references.
func (s *taskStore) Update(ctx context.Context, id string, patch domain.TaskPatch) error {
	key := s.key(id)
	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		err := s.client.Watch(ctx, func(tx *redislib.Tx) error {
			return s.update(ctx, tx, key, id, patch)
		}, key)
		if errors.Is(err, redislib.TxFailedErr) {
			continue
		}
		return err
	}
	return redislib.TxFailedErr
}

func (s *taskStore) update(ctx context.Context, tx *redislib.Tx, key, id string, patch domain.TaskPatch) error {
	raw, err := tx.Get(ctx, key).Result()
	if errors.Is(err, redislib.Nil) {
		return domain.ErrTaskNotFound
	}
	if err != nil {
		return err
	}

	var fields repository.TaskFields
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return fmt.Errorf("decode task %s: %w", id, err)
	}
	task := patch.Apply(domain.Task{ID: id, Text: fields.Text, Completed: fields.Completed, Deadline: fields.Deadline})
	payload, err := json.Marshal(repository.TaskFields{
		Text:      task.Text,
		Completed: task.Completed,
		Deadline:  task.Deadline,
	})
	if err != nil {
		return err
	}

	if s.beforeWrite != nil {
		s.beforeWrite(id)
	}
	_, err = tx.TxPipelined(ctx, func(pipe redislib.Pipeliner) error {
		pipe.SetArgs(ctx, key, payload, redislib.SetArgs{Mode: "XX", KeepTTL: true})
		return nil
	})
	return err
}

func (s *taskStore) Delete(ctx context.Context, id string) error {
	var removed *redislib.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redislib.Pipeliner) error {
		removed = pipe.Del(ctx, s.key(id))
		pipe.ZRem(ctx, s.index, id)
		return nil
	})
	if err != nil {
		return err
	}
	if removed.Val() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (s *taskStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *taskStore) key(id string) string {
	return fmt.Sprintf("%s%s", s.prefix, id)
}
