package repository

import (
	"context"

	"github.com/fastygo/todo/domain"
)

// TaskFields are the fields written when a task document is created.
type TaskFields struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	Deadline  string `json:"deadline"`
}

// TaskStore is the remote document store holding task records.
// Implementations assign identifiers on Create and return tasks in their natural order.
type TaskStore interface {
	List(ctx context.Context) ([]domain.Task, error)
	Create(ctx context.Context, fields TaskFields) (string, error)
	Update(ctx context.Context, id string, patch domain.TaskPatch) error
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}
