package services

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"skylink/internal/models"
	"skylink/internal/utils"
)

// maxNearbyAircraft caps the pilot radar picture in real mode.
const maxNearbyAircraft = 50

// maxNearbyDrones caps the drone contact list in the pilot view.
const maxNearbyDrones = 30

// PilotView assembles the pilot dashboard payload: the selected aircraft,
// all radar contacts within range, drone contacts with bearings, and the
// threats involving the selected aircraft. An empty callsign selects the
// first aircraft in the snapshot.
func (s *AirspaceService) PilotView(callsign string, rangeNM float64) (*models.PilotView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return nil, ErrNoSnapshot
	}
	if rangeNM <= 0 {
		rangeNM = 10
	}

	current := s.findAircraft(callsign)
	if current == nil {
		return nil, fmt.Errorf("aircraft %q not found in current snapshot", callsign)
	}

	view := &models.PilotView{
		CurrentAircraft: current,
		NearbyAircraft:  s.nearbyAircraft(current, rangeNM),
		NearbyDrones:    s.nearbyDrones(current, rangeNM),
		AllDrones:       append([]models.Drone(nil), s.snapshot.Drones...),
		Threats:         make([]models.ThreatRecord, 0),
		RadarRangeNM:    rangeNM,
		DataMode:        s.mode,
		Timestamp:       time.Now(),
	}
	for _, t := range s.threats {
		if t.PlaneICAO24 == current.ICAO24 {
			view.Threats = append(view.Threats, t)
		}
	}
	return view, nil
}

// DroneView assembles the drone operator dashboard payload with threats
// grouped per drone and ranked by their most severe alert.
func (s *AirspaceService) DroneView() (*models.DroneView, error) {
	status := s.Status()

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return nil, ErrNoSnapshot
	}

	groups := make(map[string]*models.DroneAlertGroup)
	for _, d := range s.snapshot.Drones {
		groups[d.ID] = &models.DroneAlertGroup{
			DroneID:   d.ID,
			Latitude:  d.Latitude,
			Longitude: d.Longitude,
			AltitudeM: d.AltitudeM,
			Alerts:    make([]models.ThreatRecord, 0),
		}
	}
	for _, t := range s.threats {
		g, ok := groups[t.DroneID]
		if !ok {
			continue
		}
		g.Alerts = append(g.Alerts, t)
		g.AlertCount++
		if g.HighestPriority == "" || s.tierRank[t.Tier] < s.tierRank[g.HighestPriority] {
			g.HighestPriority = t.Tier
		}
	}

	alerts := make([]models.DroneAlertGroup, 0, len(groups))
	for _, g := range groups {
		alerts = append(alerts, *g)
	}
	sort.Slice(alerts, func(i, j int) bool {
		ri, rj := s.groupRank(alerts[i]), s.groupRank(alerts[j])
		if ri != rj {
			return ri < rj
		}
		return alerts[i].DroneID < alerts[j].DroneID
	})

	return &models.DroneView{
		Drones:    append([]models.Drone(nil), s.snapshot.Drones...),
		Aircraft:  append([]models.Aircraft(nil), s.snapshot.Aircraft...),
		Alerts:    alerts,
		Status:    status,
		Timestamp: time.Now(),
	}, nil
}

// groupRank orders alert groups: drones with alerts first, most severe
// highest priority first, alert-free drones last.
func (s *AirspaceService) groupRank(g models.DroneAlertGroup) int {
	if g.HighestPriority == "" {
		return len(s.tierRank)
	}
	return s.tierRank[g.HighestPriority]
}

// findAircraft locates an aircraft by trimmed callsign, falling back to
// the first aircraft in the snapshot. Caller holds the read lock.
func (s *AirspaceService) findAircraft(callsign string) *models.Aircraft {
	if len(s.snapshot.Aircraft) == 0 {
		return nil
	}
	callsign = strings.TrimSpace(callsign)
	if callsign != "" {
		for i := range s.snapshot.Aircraft {
			if strings.TrimSpace(s.snapshot.Aircraft[i].Callsign) == callsign {
				a := s.snapshot.Aircraft[i]
				return &a
			}
		}
		return nil
	}
	a := s.snapshot.Aircraft[0]
	return &a
}

// nearbyAircraft returns the radar contacts around the current aircraft,
// closest first. In test mode the fixed radar range applies; in real mode
// the closest contacts are taken regardless of range so a sparse snapshot
// still yields a usable picture. Caller holds the read lock.
func (s *AirspaceService) nearbyAircraft(current *models.Aircraft, rangeNM float64) []models.NearbyAircraft {
	type contact struct {
		info models.NearbyAircraft
		nm   float64
	}
	var contacts []contact
	for _, plane := range s.snapshot.Aircraft {
		if plane.ICAO24 == current.ICAO24 {
			continue
		}
		if math.IsNaN(plane.Latitude) || math.IsNaN(plane.Longitude) {
			continue
		}
		distKm := utils.HaversineKm(current.Latitude, current.Longitude, plane.Latitude, plane.Longitude)
		distNM := utils.KmToNauticalMiles(distKm)
		contacts = append(contacts, contact{
			info: models.NearbyAircraft{
				Callsign:          strings.TrimSpace(plane.Callsign),
				ICAO24:            plane.ICAO24,
				Latitude:          plane.Latitude,
				Longitude:         plane.Longitude,
				AltitudeM:         plane.BaroAltitudeM,
				SpeedMS:           plane.VelocityMS,
				Heading:           plane.TrueTrack,
				DistanceNM:        distNM,
				RelativeAltitudeM: plane.BaroAltitudeM - current.BaroAltitudeM,
				Country:           plane.OriginCountry,
			},
			nm: distNM,
		})
	}
	sort.Slice(contacts, func(i, j int) bool { return contacts[i].nm < contacts[j].nm })

	var result []models.NearbyAircraft
	if s.mode == models.ModeReal {
		limit := maxNearbyAircraft
		if len(contacts) < limit {
			limit = len(contacts)
		}
		for _, c := range contacts[:limit] {
			result = append(result, c.info)
		}
	} else {
		for _, c := range contacts {
			if c.nm <= rangeNM {
				result = append(result, c.info)
			}
		}
	}
	return result
}

// nearbyDrones returns drone contacts within range of the current
// aircraft, annotated with bearing and compass point, closest first.
// Caller holds the read lock.
func (s *AirspaceService) nearbyDrones(current *models.Aircraft, rangeNM float64) []models.NearbyDrone {
	effectiveRange := rangeNM
	if s.mode == models.ModeReal {
		effectiveRange = rangeNM * 2
	}

	var result []models.NearbyDrone
	for _, d := range s.snapshot.Drones {
		if math.IsNaN(d.Latitude) || math.IsNaN(d.Longitude) {
			continue
		}
		distKm := utils.HaversineKm(current.Latitude, current.Longitude, d.Latitude, d.Longitude)
		distNM := utils.KmToNauticalMiles(distKm)
		if distNM > effectiveRange {
			continue
		}
		bearing := utils.BearingDegrees(current.Latitude, current.Longitude, d.Latitude, d.Longitude)
		result = append(result, models.NearbyDrone{
			DroneID:          d.ID,
			Latitude:         d.Latitude,
			Longitude:        d.Longitude,
			AltitudeM:        d.AltitudeM,
			SpeedMS:          d.SpeedMS,
			Heading:          d.Heading,
			DistanceNM:       distNM,
			Bearing:          bearing,
			RelativePosition: utils.CompassPoint(bearing),
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].DistanceNM < result[j].DistanceNM })
	if len(result) > maxNearbyDrones {
		result = result[:maxNearbyDrones]
	}
	return result
}
