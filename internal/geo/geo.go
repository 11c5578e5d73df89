// Package geo provides great-circle distance and tiered fare computation.
// All functions are pure and perform no I/O.
package geo

import (
	"errors"
	"math"
)

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371.0

// Fare tiers, in VND. The first 2 km are charged at the lower rate, the
// remainder at the higher one, on top of a flag-fall base fare. The final
// amount is rounded to the nearest 1000.
const (
	BaseFare          int64   = 20000
	firstTierKm       float64 = 2.0
	firstTierRatePerKm        = 8000.0
	secondTierRatePerKm       = 12000.0
	roundingUnit              = 1000.0
)

// ErrInvalidDistance is returned when a fare is requested for a negative or
// non-finite distance.
var ErrInvalidDistance = errors.New("invalid distance")

// Distance returns the haversine distance in kilometers between two
// (lat, lng) points.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// Fare computes the tiered fare for a trip of the given length. The result is
// always a multiple of 1000 and never decreases as the distance grows;
// Fare(0) equals BaseFare.
func Fare(distanceKm float64) (int64, error) {
	if distanceKm < 0 || math.IsNaN(distanceKm) || math.IsInf(distanceKm, 0) {
		return 0, ErrInvalidDistance
	}

	firstTier := math.Min(distanceKm, firstTierKm) * firstTierRatePerKm
	var remainder float64
	if distanceKm > firstTierKm {
		remainder = (distanceKm - firstTierKm) * secondTierRatePerKm
	}

	price := float64(BaseFare) + firstTier + remainder

	return int64(math.Round(price/roundingUnit)) * roundingUnit, nil
}

// ValidLatitude reports whether lat is within [-90, 90].
func ValidLatitude(lat float64) bool {
	return !math.IsNaN(lat) && lat >= -90 && lat <= 90
}

// ValidLongitude reports whether lng is within [-180, 180].
func ValidLongitude(lng float64) bool {
	return !math.IsNaN(lng) && lng >= -180 && lng <= 180
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
