package services

import "skylink/internal/models"

// Test scenario centered on the JFK area.
const (
	scenarioBaseLat = 40.7128
	scenarioBaseLon = -74.0060
)

// BuildTestScenario returns the built-in demonstration airspace: a cluster
// of aircraft around New York with drones placed to exercise every threat
// tier, plus two at a safe distance.
func BuildTestScenario() ([]models.Aircraft, []models.Drone) {
	type planeSpec struct {
		icao, callsign  string
		latOff, lonOff  float64
		altM, velMS     float64
		track, vertRate float64
	}
	planeSpecs := []planeSpec{
		{"TEST000", "UAL100", 0.000, 0.000, 200, 150, 90, -5},
		{"TEST001", "DAL201", 0.020, -0.020, 250, 180, 180, -2.5},
		{"TEST002", "AAL302", -0.020, 0.020, 300, 160, 270, 0},
		{"TEST003", "JBU403", 0.030, 0.030, 350, 170, 45, 2.5},
		{"TEST004", "SWA504", -0.030, -0.030, 400, 190, 225, 5},
		{"TEST005", "UAL605", 0.010, -0.010, 280, 155, 135, 7.5},
		{"TEST006", "AAL706", -0.015, 0.015, 320, 165, 315, 10},
	}

	aircraft := make([]models.Aircraft, 0, len(planeSpecs))
	for _, s := range planeSpecs {
		aircraft = append(aircraft, models.Aircraft{
			ICAO24:        s.icao,
			Callsign:      s.callsign,
			Latitude:      scenarioBaseLat + s.latOff,
			Longitude:     scenarioBaseLon + s.lonOff,
			BaroAltitudeM: s.altM,
			VelocityMS:    s.velMS,
			TrueTrack:     s.track,
			VerticalRate:  s.vertRate,
			OriginCountry: "United States",
		})
	}

	type droneSpec struct {
		id             string
		latOff, lonOff float64
		altM           float64
	}
	droneSpecs := []droneSpec{
		{"DRONE_CRITICAL", 0.0006, 0.0006, 190},
		{"DRONE_HIGH_1", 0.0200, -0.0180, 230},
		{"DRONE_HIGH_2", -0.0180, 0.0200, 280},
		{"DRONE_MED_1", 0.0260, 0.0300, 330},
		{"DRONE_MED_2", -0.0260, -0.0300, 380},
		{"DRONE_LOW_1", 0.0000, 0.0080, 260},
		{"DRONE_LOW_2", -0.0150, 0.0215, 300},
		{"DRONE_SAFE_1", 0.1000, 0.0000, 150},
		{"DRONE_SAFE_2", 0.0000, 0.1000, 450},
	}

	drones := make([]models.Drone, 0, len(droneSpecs))
	for i, s := range droneSpecs {
		drones = append(drones, models.Drone{
			ID:        s.id,
			Latitude:  scenarioBaseLat + s.latOff,
			Longitude: scenarioBaseLon + s.lonOff,
			AltitudeM: s.altM,
			SpeedMS:   float64(15 + i*2),
			Heading:   float64(i * 40),
			TimeStep:  1,
			Timestamp: "2025-10-12 10:00:00",
		})
	}

	return aircraft, drones
}
