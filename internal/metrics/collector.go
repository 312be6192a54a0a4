package metrics

import (
	"sync"
	"time"
)

// PassMetrics holds detailed latency measurements for one refresh pass:
// snapshot loading, classification, and the overall wall time, together
// with the object and threat counts the pass produced.
type PassMetrics struct {
	mu sync.RWMutex

	TotalStartTime time.Time `json:"-"`
	TotalLatencyMs float64   `json:"totalLatencyMs"`

	LoadStartTime time.Time `json:"-"`
	LoadLatencyMs float64   `json:"loadLatencyMs"`

	ClassifyStartTime time.Time `json:"-"`
	ClassifyLatencyMs float64   `json:"classifyLatencyMs"`

	// Pass outcome
	SnapshotID     string `json:"snapshotId"`
	AircraftCount  int    `json:"aircraftCount"`
	DroneCount     int    `json:"droneCount"`
	ThreatCount    int    `json:"threatCount"`
	SkippedObjects int    `json:"skippedObjects"`

	// Detailed timing breakdown
	Timings map[string]float64 `json:"timings"`
}

// NewPassMetrics creates a new metrics collector for one pass.
func NewPassMetrics(snapshotID string) *PassMetrics {
	return &PassMetrics{
		TotalStartTime: time.Now(),
		SnapshotID:     snapshotID,
		Timings:        make(map[string]float64),
	}
}

// StartLoad marks the start of snapshot loading.
func (m *PassMetrics) StartLoad() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoadStartTime = time.Now()
}

// EndLoad marks the end of snapshot loading.
func (m *PassMetrics) EndLoad() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.LoadStartTime.IsZero() {
		m.LoadLatencyMs = float64(time.Since(m.LoadStartTime).Microseconds()) / 1000.0
		m.Timings["load"] = m.LoadLatencyMs
	}
}

// StartClassify marks the start of the classification sweep.
func (m *PassMetrics) StartClassify() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClassifyStartTime = time.Now()
}

// EndClassify marks the end of the classification sweep.
func (m *PassMetrics) EndClassify() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.ClassifyStartTime.IsZero() {
		m.ClassifyLatencyMs = float64(time.Since(m.ClassifyStartTime).Microseconds()) / 1000.0
		m.Timings["classify"] = m.ClassifyLatencyMs
	}
}

// SetCounts records the object and threat counts of the pass.
func (m *PassMetrics) SetCounts(aircraft, drones, threats, skipped int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AircraftCount = aircraft
	m.DroneCount = drones
	m.ThreatCount = threats
	m.SkippedObjects = skipped
}

// Finalize calculates final metrics.
func (m *PassMetrics) Finalize() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.TotalStartTime.IsZero() {
		m.TotalLatencyMs = float64(time.Since(m.TotalStartTime).Microseconds()) / 1000.0
		m.Timings["total"] = m.TotalLatencyMs
	}
}

// TimingsSnapshot returns a copy of the timing breakdown for reporting.
func (m *PassMetrics) TimingsSnapshot() map[string]float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]float64, len(m.Timings))
	for k, v := range m.Timings {
		out[k] = v
	}
	return out
}

// TotalMs returns the overall pass latency, valid after Finalize.
func (m *PassMetrics) TotalMs() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.TotalLatencyMs
}
