package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	redislib "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/fastygo/todo/domain"
	"github.com/fastygo/todo/internal/testutil"
)

func TestFeedSince(t *testing.T) {
	feed := NewFeed(3)
	ctx := context.Background()
	for _, title := range []string{"one", "two", "three", "four"} {
		feed.Notify(ctx, domain.Notification{Severity: domain.SeveritySuccess, Title: title})
	}

	all := feed.Since(0)
	if len(all) != 3 {
		t.Fatalf("expected ring of 3, got %d", len(all))
	}
	if all[0].Title != "two" || all[2].Title != "four" {
		t.Errorf("unexpected order %v", all)
	}
	if all[0].Seq != 2 || all[2].Seq != 4 || feed.Last() != 4 {
		t.Errorf("unexpected sequence numbers %d..%d", all[0].Seq, all[2].Seq)
	}
	if all[0].ID == "" || all[0].CreatedAt.IsZero() {
		t.Error("feed should stamp id and time")
	}

	newer := feed.Since(3)
	if len(newer) != 1 || newer[0].Title != "four" {
		t.Errorf("Since(3) = %v", newer)
	}
	if got := feed.Since(4); len(got) != 0 {
		t.Errorf("Since(4) = %v", got)
	}
}

func TestFanoutDeliversToEverySink(t *testing.T) {
	a, b := &testutil.RecordingNotifier{}, &testutil.RecordingNotifier{}
	Fanout{a, nil, b}.Notify(context.Background(), domain.Notification{Severity: domain.SeverityInfo})

	if len(a.All()) != 1 || len(b.All()) != 1 {
		t.Errorf("fanout delivered %d and %d", len(a.All()), len(b.All()))
	}
}

func TestLogNotifierLevels(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	sink := NewLogNotifier(zap.New(core))
	ctx := context.Background()

	sink.Notify(ctx, domain.Notification{Severity: domain.SeveritySuccess, Title: "Task added!"})
	sink.Notify(ctx, domain.Notification{Severity: domain.SeverityWarning, Title: "Attention!"})
	sink.Notify(ctx, domain.Notification{Severity: domain.SeverityError, Title: "Something went wrong"})

	entries := logs.All()
	want := []zapcore.Level{zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries", len(entries))
	}
	for i, level := range want {
		if entries[i].Level != level {
			t.Errorf("entry %d level = %s, want %s", i, entries[i].Level, level)
		}
	}
}

type fakePublisher struct {
	channel string
	payload []byte
	err     error
}

func (f *fakePublisher) Publish(_ context.Context, channel string, message interface{}) *redislib.IntCmd {
	f.channel = channel
	f.payload, _ = message.([]byte)
	return redislib.NewIntResult(1, f.err)
}

func TestRedisPublisher(t *testing.T) {
	pub := &fakePublisher{}
	NewRedisPublisher(pub, "todo:notifications", nil).Notify(context.Background(), domain.Notification{
		Severity: domain.SeverityWarning,
		Title:    "Attention!",
	})

	if pub.channel != "todo:notifications" {
		t.Errorf("channel = %q", pub.channel)
	}
	var got domain.Notification
	if err := json.Unmarshal(pub.payload, &got); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if got.Title != "Attention!" || got.Severity != domain.SeverityWarning {
		t.Errorf("decoded %+v", got)
	}
}

func TestRedisPublisherLogsFailure(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	pub := &fakePublisher{err: errors.New("connection refused")}
	NewRedisPublisher(pub, "ch", zap.New(core)).Notify(context.Background(), domain.Notification{})

	if logs.FilterMessage("publish notification failed").Len() != 1 {
		t.Error("expected a warning for the failed publish")
	}
}
