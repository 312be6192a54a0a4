package utils

import (
	"math"
	"testing"
)

func TestHaversineKmKnownDistance(t *testing.T) {
	// JFK to LAX, roughly 3974 km great-circle.
	got := HaversineKm(40.6413, -73.7781, 33.9416, -118.4085)
	if math.Abs(got-3974) > 15 {
		t.Errorf("HaversineKm(JFK, LAX) = %f, want ~3974", got)
	}
}

func TestHaversineKmZeroForSamePoint(t *testing.T) {
	if got := HaversineKm(40.7128, -74.0060, 40.7128, -74.0060); got != 0 {
		t.Errorf("HaversineKm(same point) = %f, want 0", got)
	}
}

func TestHaversineKmIsSymmetric(t *testing.T) {
	ab := HaversineKm(40.7128, -74.0060, 51.5074, -0.1278)
	ba := HaversineKm(51.5074, -0.1278, 40.7128, -74.0060)
	if math.Abs(ab-ba) > 1e-9 {
		t.Errorf("distance not symmetric: %f vs %f", ab, ba)
	}
}

func TestBearingDegreesCardinalDirections(t *testing.T) {
	cases := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64
	}{
		{"due north", 0, 0, 1, 0, 0},
		{"due east", 0, 0, 0, 1, 90},
		{"due south", 1, 0, 0, 0, 180},
		{"due west", 0, 1, 0, 0, 270},
	}
	for _, tc := range cases {
		got := BearingDegrees(tc.lat1, tc.lon1, tc.lat2, tc.lon2)
		if math.Abs(got-tc.want) > 0.01 {
			t.Errorf("%s: BearingDegrees = %f, want %f", tc.name, got, tc.want)
		}
	}
}

func TestCompassPoint(t *testing.T) {
	cases := []struct {
		bearing float64
		want    string
	}{
		{0, "N"},
		{44, "NE"},
		{90, "E"},
		{135, "SE"},
		{180, "S"},
		{225, "SW"},
		{270, "W"},
		{315, "NW"},
		{350, "N"},
	}
	for _, tc := range cases {
		if got := CompassPoint(tc.bearing); got != tc.want {
			t.Errorf("CompassPoint(%f) = %q, want %q", tc.bearing, got, tc.want)
		}
	}
}

func TestBoundingBoxContainsCenter(t *testing.T) {
	minLat, maxLat, minLon, maxLon := BoundingBox(40.7128, -74.0060, 5)
	if minLat >= 40.7128 || maxLat <= 40.7128 {
		t.Errorf("latitude bounds [%f, %f] do not bracket the center", minLat, maxLat)
	}
	if minLon >= -74.0060 || maxLon <= -74.0060 {
		t.Errorf("longitude bounds [%f, %f] do not bracket the center", minLon, maxLon)
	}
}

func TestNauticalMileConversionRoundTrips(t *testing.T) {
	if got := NauticalMilesToKm(10); math.Abs(got-18.52) > 1e-9 {
		t.Errorf("NauticalMilesToKm(10) = %f, want 18.52", got)
	}
	if got := KmToNauticalMiles(NauticalMilesToKm(7.5)); math.Abs(got-7.5) > 1e-9 {
		t.Errorf("round trip = %f, want 7.5", got)
	}
}
