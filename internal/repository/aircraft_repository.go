package repository

import (
	"math"

	"skylink/internal/models"
)

// AircraftFilter narrows an aircraft snapshot while it is loaded. A zero
// value keeps every row that carries an identifier.
type AircraftFilter struct {
	ExcludeOnGround bool
	AltitudeEnabled bool
	MinAltitudeM    float64
	MaxAltitudeM    float64
	GeoEnabled      bool
	MinLat, MaxLat  float64
	MinLon, MaxLon  float64
}

// AircraftRepository loads aircraft snapshots from OpenSky style CSVs.
type AircraftRepository interface {
	Load(path string, filter AircraftFilter) ([]models.Aircraft, int, error)
}

// AircraftRepositoryImpl reads aircraft state vectors from flat files.
type AircraftRepositoryImpl struct{}

// NewAircraftRepository creates a new AircraftRepositoryImpl instance.
func NewAircraftRepository() *AircraftRepositoryImpl {
	return &AircraftRepositoryImpl{}
}

// Load reads one aircraft CSV snapshot. Rows without an icao24 identifier
// are dropped and counted; numeric fields that fail to parse become NaN
// and are left for the classifier to exclude. The returned int is the
// number of dropped or filtered rows.
func (r *AircraftRepositoryImpl) Load(path string, filter AircraftFilter) ([]models.Aircraft, int, error) {
	idx, rows, err := readAll(path)
	if err != nil {
		return nil, 0, err
	}

	var aircraft []models.Aircraft
	skipped := 0
	for _, record := range rows {
		icao := field(record, idx, "icao24")
		if icao == "" {
			skipped++
			continue
		}
		a := models.Aircraft{
			ICAO24:        icao,
			Callsign:      field(record, idx, "callsign"),
			Latitude:      parseFloat(field(record, idx, "latitude")),
			Longitude:     parseFloat(field(record, idx, "longitude")),
			BaroAltitudeM: parseFloat(field(record, idx, "baro_altitude")),
			VelocityMS:    parseFloat(field(record, idx, "velocity")),
			TrueTrack:     parseFloat(field(record, idx, "true_track")),
			VerticalRate:  parseFloat(field(record, idx, "vertical_rate")),
			OriginCountry: field(record, idx, "origin_country"),
			OnGround:      parseBool(field(record, idx, "on_ground")),
		}
		if !keepAircraft(a, filter) {
			skipped++
			continue
		}
		aircraft = append(aircraft, a)
	}
	return aircraft, skipped, nil
}

func keepAircraft(a models.Aircraft, filter AircraftFilter) bool {
	if filter.ExcludeOnGround && a.OnGround {
		return false
	}
	if filter.AltitudeEnabled {
		if math.IsNaN(a.BaroAltitudeM) {
			// Let the classifier account for the missing altitude.
			return true
		}
		if a.BaroAltitudeM < filter.MinAltitudeM || a.BaroAltitudeM > filter.MaxAltitudeM {
			return false
		}
	}
	if filter.GeoEnabled {
		if math.IsNaN(a.Latitude) || math.IsNaN(a.Longitude) {
			return true
		}
		if a.Latitude < filter.MinLat || a.Latitude > filter.MaxLat {
			return false
		}
		if a.Longitude < filter.MinLon || a.Longitude > filter.MaxLon {
			return false
		}
	}
	return true
}
