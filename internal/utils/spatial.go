package utils

import "math"

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0

// kmPerNauticalMile converts between the two units used by the radar views.
const kmPerNauticalMile = 1.852

// HaversineKm calculates the great-circle distance between two points
// using the Haversine formula. Inputs are degrees, the result is kilometers.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180.0)*math.Cos(lat2*math.Pi/180.0)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

// BearingDegrees calculates the initial bearing from point 1 to point 2,
// normalized to [0, 360).
func BearingDegrees(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0
	dLonRad := (lon2 - lon1) * math.Pi / 180.0

	y := math.Sin(dLonRad) * math.Cos(lat2Rad)
	x := math.Cos(lat1Rad)*math.Sin(lat2Rad) -
		math.Sin(lat1Rad)*math.Cos(lat2Rad)*math.Cos(dLonRad)

	bearing := math.Atan2(y, x) * 180.0 / math.Pi
	return math.Mod(bearing+360.0, 360.0)
}

// CompassPoint maps a bearing to one of the eight compass points (N, NE, ...).
func CompassPoint(bearing float64) string {
	points := []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}
	idx := int(math.Mod(bearing+22.5, 360.0)/45.0) % 8
	return points[idx]
}

// BoundingBox calculates a rough bounding box around a center point for
// prefiltering before exact distance checks.
func BoundingBox(lat, lon, radiusKm float64) (minLat, maxLat, minLon, maxLon float64) {
	// Approximate degrees per kilometer at the given latitude
	latDegreePerKm := 1.0 / 111.32
	lonDegreePerKm := 1.0 / (111.32 * math.Cos(lat*math.Pi/180.0))

	deltaLat := radiusKm * latDegreePerKm
	deltaLon := radiusKm * lonDegreePerKm

	minLat = lat - deltaLat
	maxLat = lat + deltaLat
	minLon = lon - deltaLon
	maxLon = lon + deltaLon

	return minLat, maxLat, minLon, maxLon
}

// KmToNauticalMiles converts kilometers to nautical miles.
func KmToNauticalMiles(km float64) float64 {
	return km / kmPerNauticalMile
}

// NauticalMilesToKm converts nautical miles to kilometers.
func NauticalMilesToKm(nm float64) float64 {
	return nm * kmPerNauticalMile
}
