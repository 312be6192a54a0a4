package repository

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestAircraftRepositoryLoadsRows(t *testing.T) {
	path := writeCSV(t, "aircraft.csv", `icao24,callsign,origin_country,latitude,longitude,baro_altitude,velocity,true_track,vertical_rate,on_ground
abc123,UAL100,United States,40.7128,-74.0060,3000,250.5,90,0.5,false
def456,DAL200,United States,41.0000,-73.5000,4500,230,180,-1.2,false
`)

	repo := NewAircraftRepository()
	aircraft, skipped, err := repo.Load(path, AircraftFilter{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if skipped != 0 {
		t.Errorf("skipped = %d, want 0", skipped)
	}
	if len(aircraft) != 2 {
		t.Fatalf("got %d aircraft, want 2", len(aircraft))
	}
	first := aircraft[0]
	if first.ICAO24 != "abc123" || first.Callsign != "UAL100" {
		t.Errorf("first aircraft = %+v, want abc123/UAL100", first)
	}
	if first.Latitude != 40.7128 || first.BaroAltitudeM != 3000 {
		t.Errorf("first aircraft position = (%f, %f), want (40.7128, 3000)", first.Latitude, first.BaroAltitudeM)
	}
}

func TestAircraftRepositoryDropsRowsWithoutIdentifier(t *testing.T) {
	path := writeCSV(t, "aircraft.csv", `icao24,callsign,latitude,longitude,baro_altitude,on_ground
,GHOST,40.0,-74.0,1000,false
abc123,UAL100,40.7,-74.0,3000,false
`)

	repo := NewAircraftRepository()
	aircraft, skipped, err := repo.Load(path, AircraftFilter{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if skipped != 1 {
		t.Errorf("skipped = %d, want 1", skipped)
	}
	if len(aircraft) != 1 || aircraft[0].ICAO24 != "abc123" {
		t.Errorf("aircraft = %v, want only abc123", aircraft)
	}
}

func TestAircraftRepositoryKeepsUnparseableNumericsAsNaN(t *testing.T) {
	path := writeCSV(t, "aircraft.csv", `icao24,callsign,latitude,longitude,baro_altitude,on_ground
abc123,UAL100,not-a-number,-74.0,,false
`)

	repo := NewAircraftRepository()
	aircraft, skipped, err := repo.Load(path, AircraftFilter{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if skipped != 0 {
		t.Errorf("skipped = %d, want 0; bad numerics are not dropped at load time", skipped)
	}
	if len(aircraft) != 1 {
		t.Fatalf("got %d aircraft, want 1", len(aircraft))
	}
	if !math.IsNaN(aircraft[0].Latitude) {
		t.Errorf("latitude = %f, want NaN", aircraft[0].Latitude)
	}
	if !math.IsNaN(aircraft[0].BaroAltitudeM) {
		t.Errorf("altitude = %f, want NaN for blank field", aircraft[0].BaroAltitudeM)
	}
}

func TestAircraftRepositoryAppliesFilters(t *testing.T) {
	path := writeCSV(t, "aircraft.csv", `icao24,callsign,latitude,longitude,baro_altitude,on_ground
ground1,GND,40.7,-74.0,0,true
low1,LOW,40.7,-74.0,50,false
high1,HGH,40.7,-74.0,3000,false
far1,FAR,60.0,-74.0,3000,false
`)

	repo := NewAircraftRepository()
	filter := AircraftFilter{
		ExcludeOnGround: true,
		AltitudeEnabled: true,
		MinAltitudeM:    100,
		MaxAltitudeM:    10000,
		GeoEnabled:      true,
		MinLat:          40, MaxLat: 42,
		MinLon: -75, MaxLon: -73,
	}
	aircraft, skipped, err := repo.Load(path, filter)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(aircraft) != 1 || aircraft[0].ICAO24 != "high1" {
		t.Errorf("aircraft = %v, want only high1", aircraft)
	}
	if skipped != 3 {
		t.Errorf("skipped = %d, want 3", skipped)
	}
}

func TestAircraftRepositoryFiltersPassRowsWithMissingValues(t *testing.T) {
	path := writeCSV(t, "aircraft.csv", `icao24,callsign,latitude,longitude,baro_altitude,on_ground
noalt,NOA,40.7,-74.0,,false
`)

	repo := NewAircraftRepository()
	filter := AircraftFilter{AltitudeEnabled: true, MinAltitudeM: 100, MaxAltitudeM: 10000}
	aircraft, _, err := repo.Load(path, filter)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(aircraft) != 1 {
		t.Errorf("got %d aircraft, want 1; NaN altitude passes the filter", len(aircraft))
	}
}

func TestAircraftRepositoryMissingFile(t *testing.T) {
	repo := NewAircraftRepository()
	if _, _, err := repo.Load(filepath.Join(t.TempDir(), "nope.csv"), AircraftFilter{}); err == nil {
		t.Error("Load accepted a missing file")
	}
}
