// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/fastygo/todo/domain"
	"github.com/fastygo/todo/repository"
)

// FakeStore is an in-memory implementation of repository.TaskStore for testing.
type FakeStore struct {
	mu     sync.Mutex
	tasks  []domain.Task
	nextID int
	calls  []string

	// Error injection for testing
	ListErr   error
	CreateErr error
	UpdateErr error
	PingErr   error
	DeleteErr map[string]error // taskID -> error
}

var _ repository.TaskStore = (*FakeStore)(nil)

// NewFakeStore creates an empty FakeStore.
func NewFakeStore() *FakeStore {
	return &FakeStore{DeleteErr: make(map[string]error)}
}

// Seed adds tasks directly, bypassing Create.
func (f *FakeStore) Seed(tasks ...domain.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, tasks...)
}

// Snapshot returns the stored tasks.
func (f *FakeStore) Snapshot() []domain.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Task, len(f.tasks))
	copy(out, f.tasks)
	return out
}

// Calls returns the operations performed so far, e.g. "delete:task-1".
func (f *FakeStore) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// List implements repository.TaskStore.
func (f *FakeStore) List(ctx context.Context) ([]domain.Task, error) {
	f.record("list")
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return f.Snapshot(), nil
}

// Create implements repository.TaskStore.
func (f *FakeStore) Create(ctx context.Context, fields repository.TaskFields) (string, error) {
	f.record("create")
	if f.CreateErr != nil {
		return "", f.CreateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	id := fmt.Sprintf("task-%d", f.nextID)
	f.tasks = append(f.tasks, domain.Task{
		ID:        id,
		Text:      fields.Text,
		Completed: fields.Completed,
		Deadline:  fields.Deadline,
	})
	return id, nil
}

// Update implements repository.TaskStore.
func (f *FakeStore) Update(ctx context.Context, id string, patch domain.TaskPatch) error {
	f.record("update:" + id)
	if f.UpdateErr != nil {
		return f.UpdateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i] = patch.Apply(f.tasks[i])
			return nil
		}
	}
	return domain.ErrTaskNotFound
}

// Delete implements repository.TaskStore.
func (f *FakeStore) Delete(ctx context.Context, id string) error {
	f.record("delete:" + id)
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.DeleteErr[id]; err != nil {
		return err
	}
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return domain.ErrTaskNotFound
}

// Ping implements repository.TaskStore.
func (f *FakeStore) Ping(ctx context.Context) error {
	return f.PingErr
}

func (f *FakeStore) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}
