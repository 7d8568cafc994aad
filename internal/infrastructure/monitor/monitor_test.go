package monitor_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fastygo/taskup/internal/infrastructure/monitor"
)

type fakeStore struct {
	err  error
	size int
}

func (f *fakeStore) Ping(context.Context) error { return f.err }
func (f *fakeStore) Size() (int, error)         { return f.size, nil }

func TestMonitor_Refresh(t *testing.T) {
	store := &fakeStore{size: 4}
	m, err := monitor.New(store, "bolt", time.Minute, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if m.IsOnline() {
		t.Fatal("must be offline before the first check")
	}

	m.Refresh()
	status := m.GetStatus()
	if !status.Online || status.Entries != 4 || status.Driver != "bolt" || status.LastCheck.IsZero() {
		t.Errorf("unexpected status %+v", status)
	}

	store.err = errors.New("connection refused")
	m.Refresh()
	status = m.GetStatus()
	if status.Online || status.LastError != "connection refused" || status.Entries != 0 {
		t.Errorf("unexpected status %+v", status)
	}
}

func TestMonitor_StartStop(t *testing.T) {
	m, err := monitor.New(&fakeStore{}, "redis", time.Second, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	m.Start()
	if !m.IsOnline() {
		t.Error("Start should run an immediate check")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := m.Stop(ctx); err != nil {
		t.Errorf("Stop: %v", err)
	}
}

func TestMonitor_NilStore(t *testing.T) {
	m, err := monitor.New(nil, "bolt", time.Minute, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	m.Refresh()
	if m.IsOnline() || m.GetStatus().LastError == "" {
		t.Errorf("nil store must report offline: %+v", m.GetStatus())
	}
}
