package monitoring

import (
	"context"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// RuntimeMonitor tracks goroutine counts and per-method request counters
// for long running services.
type RuntimeMonitor struct {
	mu             sync.RWMutex
	logger         zerolog.Logger
	started        time.Time
	baseline       int
	current        int
	peak           int
	checkInterval  time.Duration
	alertThreshold int
	lastAlert      time.Time
	alertCooldown  time.Duration
	requests       map[string]int64
	failures       map[string]int64
}

// NewRuntimeMonitor creates a monitor that samples every interval. A
// non-positive interval defaults to 30 seconds.
func NewRuntimeMonitor(logger zerolog.Logger, interval time.Duration) *RuntimeMonitor {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	baseline := runtime.NumGoroutine()
	return &RuntimeMonitor{
		logger:         logger.With().Str("component", "RuntimeMonitor").Logger(),
		started:        time.Now(),
		baseline:       baseline,
		current:        baseline,
		peak:           baseline,
		checkInterval:  interval,
		alertThreshold: 1000,
		alertCooldown:  5 * time.Minute,
		requests:       make(map[string]int64),
		failures:       make(map[string]int64),
	}
}

// Run samples until ctx is cancelled.
func (m *RuntimeMonitor) Run(ctx context.Context) {
	m.logger.Info().Int("baseline", m.baseline).Msg("Started runtime monitoring")

	ticker := time.NewTicker(m.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Sample()
		case <-ctx.Done():
			m.logger.Info().Int("peak", m.Metrics().Peak).Msg("Stopped runtime monitoring")
			return
		}
	}
}

// Sample records the current goroutine count and warns when it crosses the
// alert threshold.
func (m *RuntimeMonitor) Sample() {
	current := runtime.NumGoroutine()

	m.mu.Lock()
	m.current = current
	if current > m.peak {
		m.peak = current
	}
	growth := current - m.baseline
	shouldAlert := current > m.alertThreshold && time.Since(m.lastAlert) > m.alertCooldown
	if shouldAlert {
		m.lastAlert = time.Now()
	}
	peak := m.peak
	m.mu.Unlock()

	m.logger.Debug().
		Int("current", current).
		Int("baseline", m.baseline).
		Int("peak", peak).
		Int("growth", growth).
		Msg("Runtime metrics")

	if shouldAlert {
		m.logger.Warn().
			Int("current", current).
			Int("threshold", m.alertThreshold).
			Msg("High goroutine count detected - possible leak")
	}
}

// RecordRequest counts one call to method, and a failure when err is set
func (m *RuntimeMonitor) RecordRequest(method string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[method]++
	if err != nil {
		m.failures[method]++
	}
}

// Metrics returns a snapshot
func (m *RuntimeMonitor) Metrics() RuntimeMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return RuntimeMetrics{
		Current:  m.current,
		Baseline: m.baseline,
		Peak:     m.peak,
		Growth:   m.current - m.baseline,
		Uptime:   time.Since(m.started),
		Requests: copyMap(m.requests),
		Failures: copyMap(m.failures),
	}
}

// RuntimeMetrics is a point-in-time view of a RuntimeMonitor
type RuntimeMetrics struct {
	Current  int              `json:"current"`
	Baseline int              `json:"baseline"`
	Peak     int              `json:"peak"`
	Growth   int              `json:"growth"`
	Uptime   time.Duration    `json:"uptime"`
	Requests map[string]int64 `json:"requests"`
	Failures map[string]int64 `json:"failures"`
}

// Methods lists the request counter keys in sorted order
func (rm RuntimeMetrics) Methods() []string {
	keys := make([]string, 0, len(rm.Requests))
	for k := range rm.Requests {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func copyMap(m map[string]int64) map[string]int64 {
	result := make(map[string]int64, len(m))
	for k, v := range m {
		result[k] = v
	}
	return result
}
