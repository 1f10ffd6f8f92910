package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/todo/domain"
	"github.com/fastygo/todo/repository"
)

type taskStore struct {
	pool *pgxpool.Pool
}

// NewTaskStore returns a Postgres-backed TaskStore keeping each task as a JSONB document.
func NewTaskStore(pool *pgxpool.Pool) repository.TaskStore {
	return &taskStore{pool: pool}
}

func (s *taskStore) List(ctx context.Context) ([]domain.Task, error) {
	const query = `
	SELECT id, doc
	FROM tasks
	ORDER BY created_at, id
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		var (
			id  string
			doc []byte
		)
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, err
		}
		task, err := decodeTask(id, doc)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func (s *taskStore) Create(ctx context.Context, fields repository.TaskFields) (string, error) {
	doc, err := json.Marshal(fields)
	if err != nil {
		return "", err
	}

	const query = `
	INSERT INTO tasks (id, doc)
	VALUES ($1, $2)
	RETURNING id
	`

	var id string
	if err := s.pool.QueryRow(ctx, query, uuid.NewString(), doc).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func (s *taskStore) Update(ctx context.Context, id string, patch domain.TaskPatch) error {
	doc, err := marshalPatch(patch)
	if err != nil {
		return err
	}

	const query = `
	UPDATE tasks
	SET doc = doc || $2::jsonb,
		updated_at = NOW()
	WHERE id = $1
	RETURNING id
	`

	var updated string
	if err := s.pool.QueryRow(ctx, query, id, doc).Scan(&updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrTaskNotFound
		}
		return err
	}
	return nil
}

func (s *taskStore) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM tasks WHERE id = $1`
	tag, err := s.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (s *taskStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
