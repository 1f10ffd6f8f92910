package monitor

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

var errNoStore = errors.New("no task store configured")

// Pinger is anything whose reachability can be probed.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Monitor periodically pings the task store and caches the result for health checks.
type Monitor struct {
	store  Pinger
	driver string

	status   Status
	mu       sync.RWMutex
	interval time.Duration
	timeout  time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	logger   *zap.Logger
}

func New(store Pinger, driver string, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		store:    store,
		driver:   driver,
		interval: interval,
		timeout:  3 * time.Second,
		stopCh:   make(chan struct{}),
		logger:   logger,
		status:   Status{Driver: driver},
	}
}

func (m *Monitor) Start() {
	go m.loop()
}

func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}

func (m *Monitor) IsOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.Store
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// Refresh probes the store immediately.
func (m *Monitor) Refresh() Status {
	status := Status{
		Driver:    m.driver,
		LastCheck: time.Now(),
	}
	if err := m.checkStore(); err != nil {
		status.LastError = err.Error()
	} else {
		status.Store = true
	}

	m.mu.Lock()
	previous := m.status
	m.status = status
	m.mu.Unlock()

	if previous.Store != status.Store && !previous.LastCheck.IsZero() {
		m.logger.Warn("task store availability changed",
			zap.String("driver", m.driver),
			zap.Bool("online", status.Store),
			zap.String("error", status.LastError))
	}
	return status
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Refresh()
	for {
		select {
		case <-ticker.C:
			m.Refresh()
		case <-m.stopCh:
			return
		}
	}
}

func (m *Monitor) checkStore() error {
	if m.store == nil {
		return errNoStore
	}
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()
	return m.store.Ping(ctx)
}
