package monitor

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// CheckFunc pings one dependency.
type CheckFunc func(ctx context.Context) error

type check struct {
	name string
	fn   CheckFunc
}

type Monitor struct {
	checks []check

	status   Status
	mu       sync.RWMutex
	interval time.Duration
	timeout  time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	logger   *zap.Logger
}

func New(interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		interval: interval,
		timeout:  3 * time.Second,
		stopCh:   make(chan struct{}),
		logger:   logger,
	}
}

// Add registers a dependency check. Call before Start.
func (m *Monitor) Add(name string, fn CheckFunc) {
	if fn == nil {
		return
	}
	m.checks = append(m.checks, check{name: name, fn: fn})
}

func (m *Monitor) Start() {
	go m.loop()
}

func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}

func (m *Monitor) IsOnline() bool {
	return m.GetStatus().Healthy()
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	components := make(map[string]bool, len(m.status.Components))
	for k, v := range m.status.Components {
		components[k] = v
	}
	return Status{Components: components, LastCheck: m.status.LastCheck}
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

// Refresh runs every check once and stores the result.
func (m *Monitor) Refresh() {
	components := make(map[string]bool, len(m.checks))
	for _, c := range m.checks {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		err := c.fn(ctx)
		cancel()
		if err != nil {
			m.logger.Warn("health check failed", zap.String("component", c.name), zap.Error(err))
		}
		components[c.name] = err == nil
	}

	m.mu.Lock()
	m.status = Status{Components: components, LastCheck: time.Now()}
	m.mu.Unlock()
}
