package utils

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Checks    map[string]bool `json:"checks"`
	Healthy   bool            `json:"healthy"`
	CheckedAt time.Time       `json:"checkedAt"`
}

// Pinger checks one dependency.
type Pinger func(ctx context.Context) error

// HealthMonitor periodically pings the configured dependencies and keeps the latest snapshot.
type HealthMonitor struct {
	pingers  map[string]Pinger
	interval time.Duration
	logger   *zap.Logger

	mu      sync.RWMutex
	current HealthStatus
}

func NewHealthMonitor(interval time.Duration, logger *zap.Logger) *HealthMonitor {
	return &HealthMonitor{
		pingers:  make(map[string]Pinger),
		interval: interval,
		logger:   logger,
		current:  HealthStatus{Checks: map[string]bool{}, Healthy: true},
	}
}

// Add registers a dependency. Call before Start.
func (h *HealthMonitor) Add(name string, p Pinger) {
	h.pingers[name] = p
}

// Status returns latest stored health snapshot.
func (h *HealthMonitor) Status() HealthStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Check runs every pinger once and stores the result.
func (h *HealthMonitor) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{Checks: make(map[string]bool, len(h.pingers)), Healthy: true, CheckedAt: time.Now()}
	for name, ping := range h.pingers {
		pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := ping(pctx)
		cancel()
		status.Checks[name] = err == nil
		if err != nil {
			status.Healthy = false
			h.logger.Warn("health check failed", zap.String("dependency", name), zap.Error(err))
		}
	}

	h.mu.Lock()
	h.current = status
	h.mu.Unlock()
	return status
}

// Start checks immediately and then on every tick until ctx is done.
func (h *HealthMonitor) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(h.interval)
		defer ticker.Stop()

		h.Check(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				h.Check(ctx)
			}
		}
	}()
}
