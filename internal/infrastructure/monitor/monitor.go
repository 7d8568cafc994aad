package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Pinger is the storage backend being watched.
type Pinger interface {
	Ping(ctx context.Context) error
}

// sizer is implemented by backends that can count their entries.
type sizer interface {
	Size() (int, error)
}

// Monitor pings the storage backend on a cron schedule and keeps the last result.
type Monitor struct {
	store    Pinger
	driver   string
	interval time.Duration
	logger   *zap.Logger
	cron     *cron.Cron

	mu     sync.RWMutex
	status Status
}

func New(store Pinger, driver string, interval time.Duration, logger *zap.Logger) (*Monitor, error) {
	if interval < time.Second {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Monitor{
		store:    store,
		driver:   driver,
		interval: interval,
		logger:   logger,
		cron:     cron.New(cron.WithSeconds()),
		status:   Status{Driver: driver},
	}

	schedule := fmt.Sprintf("@every %ds", int(interval.Seconds()))
	if _, err := m.cron.AddFunc(schedule, m.Refresh); err != nil {
		return nil, fmt.Errorf("schedule storage check: %w", err)
	}
	return m, nil
}

// Start runs a first check and launches the scheduler.
func (m *Monitor) Start() {
	m.Refresh()
	m.cron.Start()
	m.logger.Info("storage monitor started", zap.String("driver", m.driver), zap.Duration("interval", m.interval))
}

// Stop waits for a running check to finish or ctx to expire.
func (m *Monitor) Stop(ctx context.Context) error {
	stopCtx := m.cron.Stop()
	select {
	case <-stopCtx.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Monitor) IsOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.Online
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// Refresh checks the backend once.
func (m *Monitor) Refresh() {
	status := Status{Driver: m.driver, LastCheck: time.Now()}

	if m.store == nil {
		status.LastError = "storage not configured"
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := m.store.Ping(ctx)
		cancel()
		if err != nil {
			status.LastError = err.Error()
		} else {
			status.Online = true
		}
		if s, ok := m.store.(sizer); ok && status.Online {
			if n, err := s.Size(); err == nil {
				status.Entries = n
			} else {
				m.logger.Warn("storage size check failed", zap.Error(err))
			}
		}
	}

	m.mu.Lock()
	previous := m.status
	m.status = status
	m.mu.Unlock()

	if previous.Online != status.Online && !previous.LastCheck.IsZero() {
		if status.Online {
			m.logger.Info("storage back online", zap.String("driver", m.driver))
		} else {
			m.logger.Warn("storage offline", zap.String("driver", m.driver), zap.String("error", status.LastError))
		}
	}
}
