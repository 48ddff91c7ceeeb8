package geo

import (
	"fmt"
	"math"
)

const (
	earthRadiusKm = 6371.0

	// Average effective ambulance speed in traffic
	ambulanceSpeedKmh = 40.0

	// Fixed dispatch and preparation overhead added to every trip
	dispatchOverheadMinutes = 3
)

// Distance computes the great-circle distance in kilometers between two
// coordinate pairs using the haversine formula.
func Distance(fromLat, fromLng, toLat, toLng float64) float64 {
	dLat := degreesToRadians(toLat - fromLat)
	dLng := degreesToRadians(toLng - fromLng)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(degreesToRadians(fromLat))*math.Cos(degreesToRadians(toLat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// EstimateTravelTime estimates ambulance travel time in minutes for a
// distance, assuming a constant effective speed plus dispatch overhead.
// It never returns less than the overhead for a non-negative distance.
func EstimateTravelTime(distanceKm float64) int {
	if distanceKm < 0 {
		distanceKm = 0
	}
	return int(math.Ceil(distanceKm/ambulanceSpeedKmh*60 + dispatchOverheadMinutes))
}

// FormatDistance renders a distance for display
func FormatDistance(distanceKm float64) string {
	if distanceKm < 0 {
		distanceKm = 0
	}
	if distanceKm < 1 {
		return fmt.Sprintf("%dm", int(math.Round(distanceKm*1000)))
	}
	return fmt.Sprintf("%.1fkm", distanceKm)
}

// FormatTravelTime renders a travel time in minutes for display
func FormatTravelTime(minutes int) string {
	if minutes < 1 {
		return "Now"
	}
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
