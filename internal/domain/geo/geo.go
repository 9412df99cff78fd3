package geo

import "math"

// EarthRadiusMeters is the mean radius of Earth used for Haversine distance.
const EarthRadiusMeters = 6_371_000.0

// Haversine returns the great-circle distance in meters between two points
// specified by longitude and latitude in degrees.
func Haversine(lon1, lat1, lon2, lat2 float64) float64 {
	lat1r := lat1 * math.Pi / 180
	lat2r := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1r)*math.Cos(lat2r)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

// ValidateCoordinate checks that longitude is in [-180,180] and latitude in [-90,90].
func ValidateCoordinate(lon, lat float64) bool {
	return lon >= -180 && lon <= 180 && lat >= -90 && lat <= 90
}

// MetersToKilometers converts meters to kilometers rounded to 2 decimal places.
func MetersToKilometers(m float64) float64 {
	return math.Round(m/10) / 100
}

// RoundScore rounds an average score to 2 decimal places.
func RoundScore(v float64) float64 {
	return math.Round(v*100) / 100
}
