package services

import "math"

const (
	// EarthRadiusMeters is the sphere radius used by the haversine distance.
	EarthRadiusMeters = 6371000.0

	// DefaultRadiusMeters is the geofence fallback for drops created without
	// an explicit radius. Applied through EffectiveRadius so every
	// eligibility check shares the same default.
	DefaultRadiusMeters = 5000.0
)

// DistanceMeters returns the great-circle distance between two coordinates
// in degrees. Out-of-range inputs are not rejected; the result is whatever
// the sphere math yields.
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusMeters * c
}

// EffectiveRadius resolves an unset (non-positive) geofence radius to the
// default.
func EffectiveRadius(radiusMeters float64) float64 {
	if radiusMeters <= 0 {
		return DefaultRadiusMeters
	}
	return radiusMeters
}

// WithinRadius reports whether the point lies inside the geofence centered
// at (centerLat, centerLon), applying the default radius when unset.
func WithinRadius(lat, lon, centerLat, centerLon, radiusMeters float64) bool {
	return DistanceMeters(lat, lon, centerLat, centerLon) <= EffectiveRadius(radiusMeters)
}
