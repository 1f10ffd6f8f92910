package notify

import (
	"context"
	"encoding/json"

	redislib "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/fastygo/todo/domain"
	"github.com/fastygo/todo/pkg/logger"
	"github.com/fastygo/todo/usecase"
)

// Fanout forwards every notification to each sink in order.
type Fanout []usecase.Notifier

func (f Fanout) Notify(ctx context.Context, n domain.Notification) {
	for _, sink := range f {
		if sink != nil {
			sink.Notify(ctx, n)
		}
	}
}

// LogNotifier writes notifications to the application log.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogNotifier{logger: log}
}

func (l *LogNotifier) Notify(ctx context.Context, n domain.Notification) {
	fields := []zap.Field{
		zap.String("severity", string(n.Severity)),
		zap.String("title", n.Title),
	}
	if n.Message != "" {
		fields = append(fields, zap.String("message", n.Message))
	}

	log := logger.WithRequestID(ctx, l.logger)
	switch n.Severity {
	case domain.SeverityError:
		log.Error("notification", fields...)
	case domain.SeverityWarning:
		log.Warn("notification", fields...)
	default:
		log.Info("notification", fields...)
	}
}

// Publisher is the subset of the Redis client used for pub/sub.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redislib.IntCmd
}

// RedisPublisher broadcasts notifications as JSON on a Redis channel.
type RedisPublisher struct {
	client  Publisher
	channel string
	logger  *zap.Logger
}

func NewRedisPublisher(client Publisher, channel string, log *zap.Logger) *RedisPublisher {
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisPublisher{client: client, channel: channel, logger: log}
}

// Notify publishes n. Delivery failures are logged and otherwise ignored.
func (p *RedisPublisher) Notify(ctx context.Context, n domain.Notification) {
	payload, err := json.Marshal(n)
	if err != nil {
		p.logger.Error("encode notification failed", zap.Error(err))
		return
	}
	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		p.logger.Warn("publish notification failed", zap.String("channel", p.channel), zap.Error(err))
	}
}

var (
	_ usecase.Notifier = (*Feed)(nil)
	_ usecase.Notifier = (*LogNotifier)(nil)
	_ usecase.Notifier = (*RedisPublisher)(nil)
	_ usecase.Notifier = Fanout(nil)
)
