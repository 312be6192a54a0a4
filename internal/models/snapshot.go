package models

import (
	"time"

	"github.com/google/uuid"
)

// DataMode selects which snapshot source a pass consumes. It is always an
// explicit parameter; the service holds no global toggle.
type DataMode string

const (
	ModeTest DataMode = "test"
	ModeReal DataMode = "real"
)

// Valid reports whether the mode names a known snapshot source.
func (m DataMode) Valid() bool {
	return m == ModeTest || m == ModeReal
}

// Snapshot is one internally consistent set of aircraft and drone
// positions. Collections are immutable once loaded; a refresh builds a
// new snapshot rather than mutating the previous one.
type Snapshot struct {
	ID           uuid.UUID  `json:"id"`
	Mode         DataMode   `json:"mode"`
	LoadedAt     time.Time  `json:"loaded_at"`
	Aircraft     []Aircraft `json:"-"`
	Drones       []Drone    `json:"-"`
	AircraftRows int        `json:"aircraft_rows"`
	DroneRows    int        `json:"drone_rows"`
	SkippedRows  int        `json:"skipped_rows"`
}

// SystemStatus is the payload of the status endpoint.
type SystemStatus struct {
	AircraftCount int                `json:"aircraft_count"`
	DroneCount    int                `json:"drone_count"`
	ThreatCount   int                `json:"threat_count"`
	DataMode      DataMode           `json:"data_mode"`
	SnapshotID    uuid.UUID          `json:"snapshot_id"`
	SystemStatus  string             `json:"system_status"`
	LastUpdate    time.Time          `json:"last_update"`
	PassTimings   map[string]float64 `json:"pass_timings_ms,omitempty"`
}
