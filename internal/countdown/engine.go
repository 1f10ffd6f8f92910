package countdown

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/fastygo/todo/domain"
)

// TaskSource provides the current task collection.
type TaskSource interface {
	Tasks() []domain.Task
}

// EngineConfig controls the tick period and deadline interpretation.
type EngineConfig struct {
	Interval time.Duration
	Location *time.Location
	// Clock defaults to time.Now.
	Clock func() time.Time
}

// Engine recomputes the countdown label of every task on a fixed period. It keeps
// only the latest label per task identifier between ticks.
type Engine struct {
	source TaskSource
	cfg    EngineConfig
	logger *zap.Logger
	cron   *cron.Cron

	mu        sync.RWMutex
	remaining map[string]string
	lastTick  time.Time
}

func NewEngine(source TaskSource, cfg EngineConfig, logger *zap.Logger) *Engine {
	if cfg.Interval < time.Second {
		cfg.Interval = time.Second
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	e := &Engine{
		source:    source,
		cfg:       cfg,
		logger:    logger,
		remaining: make(map[string]string),
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}

	schedule := fmt.Sprintf("@every %s", cfg.Interval)
	if _, err := e.cron.AddFunc(schedule, func() { e.Tick() }); err != nil {
		logger.Error("countdown schedule rejected", zap.String("schedule", schedule), zap.Error(err))
	}
	return e
}

// Start computes the first labels immediately and launches the scheduler.
func (e *Engine) Start() {
	e.Tick()
	e.cron.Start()
	e.logger.Info("countdown engine started", zap.Duration("interval", e.cfg.Interval))
}

// Stop cancels the timer and waits for a running tick, or for ctx to end.
func (e *Engine) Stop(ctx context.Context) {
	stopCtx := e.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	e.logger.Info("countdown engine stopped")
}

// Tick recomputes every label from the current collection and returns them.
func (e *Engine) Tick() map[string]string {
	now := e.cfg.Clock()
	var tasks []domain.Task
	if e.source != nil {
		tasks = e.source.Tasks()
	}

	next := make(map[string]string, len(tasks))
	for _, task := range tasks {
		next[task.ID] = Remaining(task.Deadline, now, e.cfg.Location)
	}

	e.mu.Lock()
	e.remaining = next
	e.lastTick = now
	e.mu.Unlock()
	return next
}

// Lookup returns the latest label for id, or PendingLabel before the task has
// been seen by a tick.
func (e *Engine) Lookup(id string) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if label, ok := e.remaining[id]; ok {
		return label
	}
	return PendingLabel
}

// Snapshot returns a copy of the latest labels.
func (e *Engine) Snapshot() map[string]string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make(map[string]string, len(e.remaining))
	for id, label := range e.remaining {
		out[id] = label
	}
	return out
}

// LastTick reports when labels were last recomputed.
func (e *Engine) LastTick() time.Time {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lastTick
}

// Now returns the engine's clock reading.
func (e *Engine) Now() time.Time {
	return e.cfg.Clock()
}

// Location returns the zone used for zone-less deadlines.
func (e *Engine) Location() *time.Location {
	return e.cfg.Location
}
