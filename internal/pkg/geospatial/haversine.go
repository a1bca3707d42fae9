package geospatial

import "math"

const earthRadiusKm = 6371.0

// Haversine calculates the great-circle distance in kilometres between two
// points given in decimal degrees. NaN inputs propagate to the result.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// RoundKm rounds a distance to one decimal place for API responses.
func RoundKm(km float64) float64 {
	return math.Round(km*10) / 10
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
