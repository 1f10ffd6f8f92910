package bolt

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fastygo/todo/domain"
	"github.com/fastygo/todo/repository"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "data", "tasks.db"), "")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreCreateListKeepsInsertionOrder(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	var ids []string
	for _, text := range []string{"first", "second", "third"} {
		id, err := store.Create(ctx, repository.TaskFields{Text: text, Deadline: "2025-01-10T09:00"})
		if err != nil {
			t.Fatalf("create %s: %v", text, err)
		}
		ids = append(ids, id)
	}

	tasks, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}
	for i, want := range []string{"first", "second", "third"} {
		if tasks[i].Text != want || tasks[i].ID != ids[i] {
			t.Errorf("position %d: got %+v, want text %q id %q", i, tasks[i], want, ids[i])
		}
		if tasks[i].Completed {
			t.Errorf("position %d: new task should not be completed", i)
		}
	}

	if size, err := store.Size(); err != nil || size != 3 {
		t.Errorf("size = %d, %v; want 3", size, err)
	}
}

func TestStoreUpdateAppliesPartialFields(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	id, err := store.Create(ctx, repository.TaskFields{Text: "draft", Deadline: "2025-01-10T09:00"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	done := true
	if err := store.Update(ctx, id, domain.TaskPatch{Completed: &done}); err != nil {
		t.Fatalf("update: %v", err)
	}

	tasks, _ := store.List(ctx)
	if len(tasks) != 1 || !tasks[0].Completed || tasks[0].Text != "draft" || tasks[0].Deadline != "2025-01-10T09:00" {
		t.Errorf("unexpected task after update: %+v", tasks)
	}

	if err := store.Update(ctx, "missing", domain.TaskPatch{Completed: &done}); err != domain.ErrTaskNotFound {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestStoreDelete(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	id, _ := store.Create(ctx, repository.TaskFields{Text: "gone", Deadline: "2025-01-10"})
	if err := store.Delete(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.Delete(ctx, id); err != domain.ErrTaskNotFound {
		t.Errorf("second delete: expected ErrTaskNotFound, got %v", err)
	}
	tasks, _ := store.List(ctx)
	if len(tasks) != 0 {
		t.Errorf("expected empty store, got %+v", tasks)
	}
}

func TestStorePingAfterClose(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "tasks.db"), "tasks")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := store.Ping(context.Background()); err != nil {
		t.Fatalf("ping open store: %v", err)
	}
	store.Close()
	if err := store.Ping(context.Background()); err == nil {
		t.Error("expected ping to fail on a closed store")
	}
}
