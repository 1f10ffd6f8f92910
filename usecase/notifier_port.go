package usecase

import (
	"context"

	"github.com/fastygo/todo/domain"
)

// Notifier delivers user-visible toasts and alerts so use cases stay presentation-agnostic.
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, n domain.Notification)

func (f NotifierFunc) Notify(ctx context.Context, n domain.Notification) {
	f(ctx, n)
}
