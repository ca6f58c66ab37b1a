package utils

import (
	"sync"
	"time"
)

// Tracks performance metrics across the system
type MetricsCollector struct {
	mu           sync.RWMutex
	requestCount uint64
	errorCount   uint64

	// Maps operation name to list of latencies in nanoseconds
	operationTimes map[string][]int64

	systemStartTime time.Time
}

func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		operationTimes:  make(map[string][]int64),
		systemStartTime: time.Now(),
	}
}

func (mc *MetricsCollector) IncrementRequests() {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.requestCount++
}

func (mc *MetricsCollector) IncrementErrors() {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.errorCount++
}

func (mc *MetricsCollector) AddOperationLatency(operationName string, duration time.Duration) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if _, exists := mc.operationTimes[operationName]; !exists {
		mc.operationTimes[operationName] = make([]int64, 0)
	}
	mc.operationTimes[operationName] = append(
		mc.operationTimes[operationName],
		duration.Nanoseconds(),
	)
}

// Snapshot summarises collected metrics for the health endpoint.
type MetricsSnapshot struct {
	Uptime         time.Duration            `json:"uptime"`
	RequestCount   uint64                   `json:"requestCount"`
	ErrorCount     uint64                   `json:"errorCount"`
	AvgLatencyByOp map[string]time.Duration `json:"avgLatencyByOp"`
}

func (mc *MetricsCollector) Snapshot() MetricsSnapshot {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	avg := make(map[string]time.Duration, len(mc.operationTimes))
	for op, samples := range mc.operationTimes {
		if len(samples) == 0 {
			continue
		}
		var total int64
		for _, ns := range samples {
			total += ns
		}
		avg[op] = time.Duration(total / int64(len(samples)))
	}

	return MetricsSnapshot{
		Uptime:         time.Since(mc.systemStartTime),
		RequestCount:   mc.requestCount,
		ErrorCount:     mc.errorCount,
		AvgLatencyByOp: avg,
	}
}
