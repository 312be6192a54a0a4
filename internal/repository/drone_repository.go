package repository

import (
	"sort"

	"skylink/internal/models"
)

// DroneRepository loads drone snapshots from telemetry CSVs.
type DroneRepository interface {
	Load(path string) ([]models.Drone, int, error)
}

// DroneRepositoryImpl reads drone positions from flat files.
type DroneRepositoryImpl struct{}

// NewDroneRepository creates a new DroneRepositoryImpl instance.
func NewDroneRepository() *DroneRepositoryImpl {
	return &DroneRepositoryImpl{}
}

// Load reads one drone CSV snapshot. Rows without a drone_id are dropped
// and counted. When a drone appears at multiple time steps, only the
// latest position survives, so a pass always sees one position per drone.
func (r *DroneRepositoryImpl) Load(path string) ([]models.Drone, int, error) {
	idx, rows, err := readAll(path)
	if err != nil {
		return nil, 0, err
	}

	latest := make(map[string]models.Drone)
	skipped := 0
	for _, record := range rows {
		id := field(record, idx, "drone_id")
		if id == "" {
			skipped++
			continue
		}
		d := models.Drone{
			ID:        id,
			Latitude:  parseFloat(field(record, idx, "latitude")),
			Longitude: parseFloat(field(record, idx, "longitude")),
			AltitudeM: parseFloat(field(record, idx, "altitude")),
			SpeedMS:   parseFloat(field(record, idx, "speed")),
			Heading:   parseFloat(field(record, idx, "heading")),
			TimeStep:  parseInt(field(record, idx, "time_step")),
			Timestamp: field(record, idx, "timestamp"),
		}
		if prev, ok := latest[id]; !ok || d.TimeStep >= prev.TimeStep {
			latest[id] = d
		}
	}

	drones := make([]models.Drone, 0, len(latest))
	for _, d := range latest {
		drones = append(drones, d)
	}
	sort.Slice(drones, func(i, j int) bool { return drones[i].ID < drones[j].ID })

	return drones, skipped, nil
}
