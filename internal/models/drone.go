package models

// Drone represents one drone position loaded from a drone telemetry CSV.
// When the source carries multiple time steps per drone, only the latest
// position for each ID survives loading.
type Drone struct {
	ID        string  `json:"drone_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	AltitudeM float64 `json:"altitude"`
	SpeedMS   float64 `json:"speed"`
	Heading   float64 `json:"heading"`
	TimeStep  int     `json:"time_step"`
	Timestamp string  `json:"timestamp"`
}
