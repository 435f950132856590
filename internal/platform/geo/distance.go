package geo

import (
	"github.com/golang/geo/s2"

	"visit-route-service/internal/domain"
)

const EarthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance between a and b.
func DistanceKm(a, b domain.Coordinates) float64 {
	p1 := s2.LatLngFromDegrees(a.Lat, a.Lon)
	p2 := s2.LatLngFromDegrees(b.Lat, b.Lon)
	return p1.Distance(p2).Radians() * EarthRadiusKm
}
