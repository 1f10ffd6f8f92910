package testutil

import (
	"context"
	"sync"

	"github.com/fastygo/todo/domain"
)

// RecordingNotifier collects every notification it receives.
type RecordingNotifier struct {
	mu   sync.Mutex
	sent []domain.Notification
}

// Notify implements usecase.Notifier.
func (r *RecordingNotifier) Notify(ctx context.Context, n domain.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
}

// All returns the received notifications in order.
func (r *RecordingNotifier) All() []domain.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Notification(nil), r.sent...)
}

// Count returns how many notifications of the given severity were received.
func (r *RecordingNotifier) Count(severity domain.Severity) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, sent := range r.sent {
		if sent.Severity == severity {
			n++
		}
	}
	return n
}

// Reset drops everything recorded so far.
func (r *RecordingNotifier) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = nil
}
