package alert

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/todo/domain"
	"github.com/fastygo/todo/internal/countdown"
	"github.com/fastygo/todo/usecase"
)

const (
	DefaultWindowDays = 8

	warningTitle   = "Attention!"
	warningMessage = "Some tasks are approaching their deadline, please get them done!"
)

// Config controls the warning window and deadline interpretation.
type Config struct {
	WindowDays int
	Location   *time.Location
	// Clock defaults to time.Now.
	Clock func() time.Time
}

// Monitor raises a warning whenever the collection changes and at least one
// incomplete task is due within the warning window.
type Monitor struct {
	notifier usecase.Notifier
	cfg      Config
	logger   *zap.Logger
	raised   atomic.Int64
}

func New(notifier usecase.Notifier, cfg Config, logger *zap.Logger) *Monitor {
	if cfg.WindowDays <= 0 {
		cfg.WindowDays = DefaultWindowDays
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
	return &Monitor{notifier: notifier, cfg: cfg, logger: logger}
}

// Expiring returns the incomplete tasks due within windowDays whole days of now.
// Tasks with unparseable deadlines never qualify.
func Expiring(tasks []domain.Task, now time.Time, loc *time.Location, windowDays int) []domain.Task {
	var out []domain.Task
	for _, task := range tasks {
		if task.Completed {
			continue
		}
		deadline, err := domain.ParseDeadline(task.Deadline, loc)
		if err != nil {
			continue
		}
		if days := countdown.DaysUntil(deadline, now); days >= 0 && days < int64(windowDays) {
			out = append(out, task)
		}
	}
	return out
}

// Observe inspects a new collection snapshot and raises at most one warning.
// It reports whether a warning was raised. Repeated snapshots are not de-duplicated.
func (m *Monitor) Observe(tasks []domain.Task) bool {
	expiring := Expiring(tasks, m.cfg.Clock(), m.cfg.Location, m.cfg.WindowDays)
	if len(expiring) == 0 {
		return false
	}

	m.raised.Add(1)
	m.logger.Info("deadline warning raised", zap.Int("tasks", len(expiring)))
	if m.notifier != nil {
		m.notifier.Notify(context.Background(), domain.Notification{
			Severity: domain.SeverityWarning,
			Title:    warningTitle,
			Message:  warningMessage,
		})
	}
	return true
}

// Raised returns how many warnings have been raised so far.
func (m *Monitor) Raised() int64 {
	return m.raised.Load()
}
