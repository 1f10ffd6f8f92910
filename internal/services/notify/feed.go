package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fastygo/todo/domain"
)

const defaultFeedSize = 100

// Feed keeps the most recent notifications in a bounded ring so HTTP clients
// can poll for toasts they have not displayed yet.
type Feed struct {
	mu    sync.RWMutex
	items []domain.Notification
	size  int
	seq   uint64
	clock func() time.Time
}

func NewFeed(size int) *Feed {
	if size <= 0 {
		size = defaultFeedSize
	}
	return &Feed{size: size, clock: time.Now}
}

// Notify stamps the notification and appends it, evicting the oldest entry when full.
func (f *Feed) Notify(_ context.Context, n domain.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.seq++
	n.Seq = f.seq
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = f.clock().UTC()
	}

	if len(f.items) == f.size {
		copy(f.items, f.items[1:])
		f.items[len(f.items)-1] = n
		return
	}
	f.items = append(f.items, n)
}

// Since returns the retained notifications with a sequence number above after.
func (f *Feed) Since(after uint64) []domain.Notification {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]domain.Notification, 0, len(f.items))
	for _, n := range f.items {
		if n.Seq > after {
			out = append(out, n)
		}
	}
	return out
}

// Last returns the highest sequence number handed out so far.
func (f *Feed) Last() uint64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.seq
}
