package monitor

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type stubPinger struct {
	err error
}

func (s *stubPinger) Ping(ctx context.Context) error { return s.err }

func TestMonitorRefresh(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	store := &stubPinger{}
	mon := New(store, "bolt", 0, zap.New(core))

	status := mon.Refresh()
	if !status.Store || status.Driver != "bolt" || status.LastError != "" {
		t.Fatalf("unexpected status %+v", status)
	}
	if !mon.IsOnline() {
		t.Error("expected monitor to report online")
	}

	store.err = errors.New("connection refused")
	status = mon.Refresh()
	if status.Store || status.LastError != "connection refused" {
		t.Fatalf("unexpected status %+v", status)
	}
	if mon.IsOnline() {
		t.Error("expected monitor to report offline")
	}
	if logs.FilterMessage("task store availability changed").Len() != 1 {
		t.Errorf("expected one availability warning, got %d", logs.Len())
	}
}

func TestMonitorWithoutStore(t *testing.T) {
	mon := New(nil, "none", 0, nil)
	if status := mon.Refresh(); status.Store || status.LastError == "" {
		t.Errorf("expected offline status with an error, got %+v", status)
	}
	mon.Stop()
	mon.Stop()
}
