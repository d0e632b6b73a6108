package mcp

import (
	"sort"
	"sync"
	"time"
)

// ToolMetrics tracks call statistics per tool. All methods are safe for
// concurrent use.
type ToolMetrics struct {
	mu    sync.RWMutex
	tools map[string]*toolStats
}

type toolStats struct {
	calls        int64
	failures     int64
	lastDuration time.Duration
	totalTime    time.Duration
	lastError    string
}

// ToolSnapshot is an immutable view of one tool's statistics.
type ToolSnapshot struct {
	Tool         string        `json:"tool"`
	Calls        int64         `json:"calls"`
	Failures     int64         `json:"failures"`
	LastDuration time.Duration `json:"last_duration_ms"`
	TotalTime    time.Duration `json:"total_time_ms"`
	LastError    string        `json:"last_error,omitempty"`
}

// NewToolMetrics creates an empty ToolMetrics.
func NewToolMetrics() *ToolMetrics {
	return &ToolMetrics{tools: make(map[string]*toolStats)}
}

// RecordCall records one call. failure is the tool-level error message, or
// empty when the call succeeded.
func (m *ToolMetrics) RecordCall(tool string, duration time.Duration, failure string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.tools[tool]
	if !ok {
		s = &toolStats{}
		m.tools[tool] = s
	}

	s.calls++
	s.lastDuration = duration
	s.totalTime += duration
	if failure != "" {
		s.failures++
		s.lastError = failure
	}
}

// Snapshot returns the statistics of every tool called so far, sorted by name.
func (m *ToolMetrics) Snapshot() []ToolSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]ToolSnapshot, 0, len(m.tools))
	for name, s := range m.tools {
		out = append(out, ToolSnapshot{
			Tool:         name,
			Calls:        s.calls,
			Failures:     s.failures,
			LastDuration: s.lastDuration,
			TotalTime:    s.totalTime,
			LastError:    s.lastError,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tool < out[j].Tool })
	return out
}
