package countdown

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/fastygo/todo/domain"
)

type staticSource struct {
	mu    sync.Mutex
	tasks []domain.Task
}

func (s *staticSource) Tasks() []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Task(nil), s.tasks...)
}

func (s *staticSource) set(tasks ...domain.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = tasks
}

func TestEngineTick(t *testing.T) {
	now := time.Date(2025, 1, 9, 9, 0, 0, 0, time.UTC)
	source := &staticSource{}
	source.set(
		domain.Task{ID: "report", Deadline: "2025-01-10T09:00"},
		domain.Task{ID: "late", Deadline: "2025-01-01T09:00"},
	)
	engine := NewEngine(source, EngineConfig{Location: time.UTC, Clock: func() time.Time { return now }}, nil)

	if got := engine.Lookup("report"); got != PendingLabel {
		t.Errorf("before first tick got %q, want %q", got, PendingLabel)
	}

	labels := engine.Tick()
	if labels["report"] != "1 day(s) 0 hour(s) 0 minute(s) 0 second(s)" {
		t.Errorf("report label %q", labels["report"])
	}
	if engine.Lookup("late") != ExpiredLabel {
		t.Errorf("late label %q", engine.Lookup("late"))
	}
	if !engine.LastTick().Equal(now) {
		t.Errorf("last tick %v", engine.LastTick())
	}

	source.set(domain.Task{ID: "report", Deadline: "2025-01-10T09:00"})
	engine.Tick()
	if _, ok := engine.Snapshot()["late"]; ok {
		t.Error("labels for removed tasks must not survive a tick")
	}
	if engine.Lookup("late") != PendingLabel {
		t.Errorf("removed task should read as pending, got %q", engine.Lookup("late"))
	}
}

func TestEngineStartStop(t *testing.T) {
	var mu sync.Mutex
	clock := time.Date(2025, 1, 9, 9, 0, 0, 0, time.UTC)
	source := &staticSource{}
	source.set(domain.Task{ID: "a", Deadline: "2025-01-10T09:00"})
	engine := NewEngine(source, EngineConfig{
		Interval: time.Second,
		Location: time.UTC,
		Clock: func() time.Time {
			mu.Lock()
			defer mu.Unlock()
			return clock
		},
	}, nil)

	engine.Start()
	if engine.Lookup("a") == PendingLabel {
		t.Error("Start should compute labels immediately")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	engine.Stop(ctx)

	mu.Lock()
	clock = clock.Add(time.Hour)
	mu.Unlock()
	time.Sleep(1100 * time.Millisecond)
	if got := engine.Lookup("a"); got != "1 day(s) 0 hour(s) 0 minute(s) 0 second(s)" {
		t.Errorf("no tick should run after Stop, got %q", got)
	}
}
