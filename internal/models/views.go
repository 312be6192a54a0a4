package models

import "time"

// NearbyAircraft is one radar contact in the pilot view.
type NearbyAircraft struct {
	Callsign           string  `json:"callsign"`
	ICAO24             string  `json:"icao24"`
	Latitude           float64 `json:"latitude"`
	Longitude          float64 `json:"longitude"`
	AltitudeM          float64 `json:"altitude_m"`
	SpeedMS            float64 `json:"speed"`
	Heading            float64 `json:"heading"`
	DistanceNM         float64 `json:"distance_nm"`
	RelativeAltitudeM  float64 `json:"relative_altitude_m"`
	Country            string  `json:"country"`
}

// NearbyDrone is one drone contact in the pilot view, annotated with
// bearing and a compass-point description relative to the own aircraft.
type NearbyDrone struct {
	DroneID          string  `json:"drone_id"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	AltitudeM        float64 `json:"altitude_m"`
	SpeedMS          float64 `json:"speed"`
	Heading          float64 `json:"heading"`
	DistanceNM       float64 `json:"distance_nm"`
	Bearing          float64 `json:"bearing"`
	RelativePosition string  `json:"relative_position"`
}

// PilotView is the payload of the pilot dashboard endpoint: the selected
// aircraft, its radar picture, and the threats that involve it.
type PilotView struct {
	CurrentAircraft *Aircraft        `json:"current_aircraft"`
	NearbyAircraft  []NearbyAircraft `json:"nearby_aircraft"`
	NearbyDrones    []NearbyDrone    `json:"nearby_drones"`
	AllDrones       []Drone          `json:"all_drones"`
	Threats         []ThreatRecord   `json:"threats"`
	RadarRangeNM    float64          `json:"radar_range_nm"`
	DataMode        DataMode         `json:"data_mode"`
	Timestamp       time.Time        `json:"timestamp"`
}

// DroneView is the payload of the drone operator dashboard endpoint.
type DroneView struct {
	Drones    []Drone           `json:"drones"`
	Aircraft  []Aircraft        `json:"aircraft"`
	Alerts    []DroneAlertGroup `json:"alerts"`
	Status    SystemStatus      `json:"system_status"`
	Timestamp time.Time         `json:"timestamp"`
}
