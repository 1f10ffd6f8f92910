package task

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fastygo/todo/domain"
	"github.com/fastygo/todo/pkg/logger"
	"github.com/fastygo/todo/repository"
	"github.com/fastygo/todo/usecase"
)

// Options selects the optional capabilities of a Manager.
type Options struct {
	// Location is used to parse deadlines that carry no zone.
	Location *time.Location
	// Selection enables the bulk-delete selection set.
	Selection bool
	// Toasts enables success and info notifications; warnings and errors are always sent.
	Toasts bool
	// BulkDeleteConcurrency bounds the number of remote deletes in flight.
	BulkDeleteConcurrency int
}

// BulkResult reports what a bulk delete did with each requested identifier.
type BulkResult struct {
	Deleted []string          `json:"deleted"`
	Stale   []string          `json:"stale,omitempty"`
	Failed  map[string]string `json:"failed,omitempty"`
}

// Listener receives a snapshot of the collection after a change.
type Listener func([]domain.Task)

// Manager owns the in-memory task collection and the selection set, and mirrors
// every transition to the task store.
type Manager struct {
	store    repository.TaskStore
	notifier usecase.Notifier
	logger   *zap.Logger
	opts     Options

	mu        sync.Mutex
	tasks     []domain.Task
	selected  map[string]struct{}
	listeners []Listener
}

func New(store repository.TaskStore, notifier usecase.Notifier, log *zap.Logger, opts Options) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.BulkDeleteConcurrency <= 0 {
		opts.BulkDeleteConcurrency = 8
	}
	return &Manager{
		store:    store,
		notifier: notifier,
		logger:   log,
		opts:     opts,
		selected: make(map[string]struct{}),
	}
}

// OnChange registers fn to receive a snapshot of the collection after every change.
func (m *Manager) OnChange(fn Listener) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// Tasks returns a copy of the collection in display order.
func (m *Manager) Tasks() []domain.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Task looks up a single task by identifier.
func (m *Manager) Task(id string) (domain.Task, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.indexLocked(id); i >= 0 {
		return m.tasks[i], true
	}
	return domain.Task{}, false
}

// Location returns the zone used for zone-less deadlines.
func (m *Manager) Location() *time.Location {
	return m.opts.Location
}

// Load replaces the collection with the store's contents.
func (m *Manager) Load(ctx context.Context) error {
	tasks, err := m.store.List(ctx)
	if err != nil {
		return m.storeFailure(ctx, "list", err)
	}

	m.mu.Lock()
	m.tasks = append(make([]domain.Task, 0, len(tasks)), tasks...)
	for id := range m.selected {
		if m.indexLocked(id) < 0 {
			delete(m.selected, id)
		}
	}
	m.mu.Unlock()

	logger.WithRequestID(ctx, m.logger).Info("tasks loaded", zap.Int("count", len(tasks)))
	m.changed()
	return nil
}

// Create validates the fields, writes a new task to the store and appends it
// locally under the identifier the store assigned.
func (m *Manager) Create(ctx context.Context, text, deadline string) (domain.Task, error) {
	text, deadline, err := domain.ValidateFields(text, deadline, m.opts.Location)
	if err != nil {
		return domain.Task{}, err
	}

	id, err := m.store.Create(ctx, repository.TaskFields{Text: text, Deadline: deadline})
	if err != nil {
		return domain.Task{}, m.storeFailure(ctx, "create", err)
	}
	task := domain.Task{ID: id, Text: text, Deadline: deadline}

	m.mu.Lock()
	if i := m.indexLocked(id); i >= 0 {
		m.tasks[i] = task
	} else {
		m.tasks = append(m.tasks, task)
	}
	m.mu.Unlock()

	logger.WithRequestID(ctx, m.logger).Info("task created", zap.String("task_id", id))
	m.changed()
	m.notify(ctx, domain.SeveritySuccess, "Task added!", "")
	return task, nil
}

// Edit replaces the text and deadline of an existing task.
func (m *Manager) Edit(ctx context.Context, id, text, deadline string) (domain.Task, error) {
	text, deadline, err := domain.ValidateFields(text, deadline, m.opts.Location)
	if err != nil {
		return domain.Task{}, err
	}
	if _, ok := m.Task(id); !ok {
		return domain.Task{}, domain.ErrTaskNotFound
	}

	patch := domain.TaskPatch{Text: &text, Deadline: &deadline}
	if err := m.store.Update(ctx, id, patch); err != nil {
		return domain.Task{}, m.storeFailure(ctx, "update", err)
	}

	m.mu.Lock()
	i := m.indexLocked(id)
	if i < 0 {
		m.mu.Unlock()
		return domain.Task{}, domain.ErrTaskNotFound
	}
	m.tasks[i] = patch.Apply(m.tasks[i])
	task := m.tasks[i]
	m.mu.Unlock()

	logger.WithRequestID(ctx, m.logger).Info("task updated", zap.String("task_id", id))
	m.changed()
	m.notify(ctx, domain.SeveritySuccess, "Task updated!", "")
	return task, nil
}

// ToggleComplete flips the completed flag locally and then in the store.
// The local change is not rolled back if the store write fails.
func (m *Manager) ToggleComplete(ctx context.Context, id string) (domain.Task, error) {
	m.mu.Lock()
	i := m.indexLocked(id)
	if i < 0 {
		m.mu.Unlock()
		return domain.Task{}, domain.ErrTaskNotFound
	}
	m.tasks[i].Completed = !m.tasks[i].Completed
	task := m.tasks[i]
	m.mu.Unlock()

	m.changed()

	completed := task.Completed
	if err := m.store.Update(ctx, id, domain.TaskPatch{Completed: &completed}); err != nil {
		return task, m.storeFailure(ctx, "update", err)
	}

	logger.WithRequestID(ctx, m.logger).Info("task toggled",
		zap.String("task_id", id),
		zap.Bool("completed", completed))
	if completed {
		m.notify(ctx, domain.SeverityInfo, "Task completed", task.Text)
	} else {
		m.notify(ctx, domain.SeverityInfo, "Task reopened", task.Text)
	}
	return task, nil
}

// Delete removes a task from the store and then from the collection.
func (m *Manager) Delete(ctx context.Context, id string) error {
	if _, ok := m.Task(id); !ok {
		return domain.ErrTaskNotFound
	}
	if err := m.store.Delete(ctx, id); err != nil {
		return m.storeFailure(ctx, "delete", err)
	}

	m.mu.Lock()
	m.removeLocked(map[string]struct{}{id: {}})
	m.mu.Unlock()

	logger.WithRequestID(ctx, m.logger).Info("task deleted", zap.String("task_id", id))
	m.changed()
	m.notify(ctx, domain.SeveritySuccess, "Task deleted!", "")
	return nil
}

// BulkDelete removes every referenced task. Remote deletes run concurrently and
// all of them run to completion. Ids whose delete succeeded are removed locally;
// failed ids stay in the collection and the selection, and their errors are
// returned joined as a single store error. A fully successful run clears the
// selection. Ids not present in the collection are reported as stale and never
// sent to the store.
func (m *Manager) BulkDelete(ctx context.Context, ids []string) (BulkResult, error) {
	var result BulkResult
	if len(ids) == 0 {
		return result, nil
	}

	targets := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	m.mu.Lock()
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if m.indexLocked(id) < 0 {
			result.Stale = append(result.Stale, id)
			delete(m.selected, id)
			continue
		}
		targets = append(targets, id)
	}
	m.mu.Unlock()

	if len(targets) == 0 {
		return result, nil
	}

	errs := make([]error, len(targets))
	var g errgroup.Group
	g.SetLimit(m.opts.BulkDeleteConcurrency)
	for i, id := range targets {
		i, id := i, id
		g.Go(func() error {
			errs[i] = m.store.Delete(ctx, id)
			return nil
		})
	}
	_ = g.Wait()

	removed := make(map[string]struct{}, len(targets))
	var failures []error
	for i, id := range targets {
		if errs[i] != nil {
			if result.Failed == nil {
				result.Failed = make(map[string]string)
			}
			result.Failed[id] = errs[i].Error()
			failures = append(failures, fmt.Errorf("%s: %w", id, errs[i]))
			continue
		}
		removed[id] = struct{}{}
		result.Deleted = append(result.Deleted, id)
	}

	if len(removed) > 0 {
		m.mu.Lock()
		m.removeLocked(removed)
		m.mu.Unlock()
		m.changed()
	}

	log := logger.WithRequestID(ctx, m.logger)
	log.Info("tasks bulk deleted",
		zap.Int("deleted", len(result.Deleted)),
		zap.Int("failed", len(failures)),
		zap.Int("stale", len(result.Stale)))

	if len(failures) > 0 {
		return result, m.storeFailure(ctx, "bulk delete", errors.Join(failures...))
	}
	m.ClearSelection()
	m.notify(ctx, domain.SeveritySuccess, "Deleted!",
		fmt.Sprintf("%d selected task(s) have been deleted.", len(result.Deleted)))
	return result, nil
}

func (m *Manager) snapshotLocked() []domain.Task {
	out := make([]domain.Task, len(m.tasks))
	copy(out, m.tasks)
	return out
}

func (m *Manager) indexLocked(id string) int {
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (m *Manager) removeLocked(ids map[string]struct{}) {
	kept := m.tasks[:0]
	for _, task := range m.tasks {
		if _, drop := ids[task.ID]; drop {
			continue
		}
		kept = append(kept, task)
	}
	m.tasks = kept
	for id := range ids {
		delete(m.selected, id)
	}
}

func (m *Manager) changed() {
	m.mu.Lock()
	snapshot := m.snapshotLocked()
	listeners := append([]Listener(nil), m.listeners...)
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(snapshot)
	}
}

func (m *Manager) storeFailure(ctx context.Context, op string, err error) error {
	wrapped := domain.StoreError(op, err)
	logger.WithRequestID(ctx, m.logger).Error("task store operation failed",
		zap.String("operation", op),
		zap.Error(err))
	m.notify(ctx, domain.SeverityError, "Something went wrong", wrapped.Error())
	return wrapped
}

func (m *Manager) notify(ctx context.Context, severity domain.Severity, title, message string) {
	n := domain.Notification{Severity: severity, Title: title, Message: message}
	if n.IsToast() && !m.opts.Toasts {
		m.logger.Debug("toast suppressed", zap.String("title", title))
		return
	}
	if m.notifier == nil {
		return
	}
	m.notifier.Notify(ctx, n)
}
