package models

// ThreatRecord is the interchange record for one aircraft/drone pair whose
// separation fell within a configured tier. It is produced fresh on every
// pass and only persists when explicitly exported.
type ThreatRecord struct {
	PlaneICAO24          string  `json:"plane_icao24"`
	PlaneCallsign        string  `json:"plane_callsign"`
	DroneID              string  `json:"drone_id"`
	HorizontalDistanceKm float64 `json:"horizontal_distance_km"`
	VerticalDistanceM    float64 `json:"vertical_distance_m"`
	Tier                 string  `json:"tier"`
	PlaneLatitude        float64 `json:"plane_latitude"`
	PlaneLongitude       float64 `json:"plane_longitude"`
	PlaneAltitudeM       float64 `json:"plane_altitude_m"`
	DroneLatitude        float64 `json:"drone_latitude"`
	DroneLongitude       float64 `json:"drone_longitude"`
	DroneAltitudeM       float64 `json:"drone_altitude_m"`
}

// ThreatSummary aggregates one pass for the dashboards.
type ThreatSummary struct {
	TotalThreats          int            `json:"total_threats"`
	ThreatsByTier         map[string]int `json:"threats_by_tier"`
	UniquePlanes          int            `json:"unique_planes"`
	UniqueDrones          int            `json:"unique_drones"`
	AvgHorizontalKm       float64        `json:"avg_horizontal_distance_km"`
	AvgVerticalM          float64        `json:"avg_vertical_distance_m"`
	MinHorizontalKm       float64        `json:"min_horizontal_distance_km"`
	MinVerticalM          float64        `json:"min_vertical_distance_m"`
	SkippedPlanes         int            `json:"skipped_planes"`
	SkippedDrones         int            `json:"skipped_drones"`
	ClosestPlaneCallsign  string         `json:"closest_plane_callsign,omitempty"`
	ClosestDroneID        string         `json:"closest_drone_id,omitempty"`
}

// DroneAlertGroup collects the threats involving a single drone for the
// drone operator dashboard, ordered by severity.
type DroneAlertGroup struct {
	DroneID         string         `json:"drone_id"`
	Latitude        float64        `json:"latitude"`
	Longitude       float64        `json:"longitude"`
	AltitudeM       float64        `json:"altitude_m"`
	AlertCount      int            `json:"alert_count"`
	HighestPriority string         `json:"highest_priority"`
	Alerts          []ThreatRecord `json:"alerts"`
}
