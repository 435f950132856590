// Package geo holds coordinate helpers shared by adapters and services.
package geo

import (
	"fmt"

	"github.com/twpayne/go-polyline"

	"visit-route-service/internal/domain"
)

// DecodePath decodes a Google encoded polyline into coordinates.
func DecodePath(encoded string) ([]domain.Coordinates, error) {
	if encoded == "" {
		return []domain.Coordinates{}, nil
	}

	coords, rest, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, fmt.Errorf("decode polyline: %w", err)
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("decode polyline: %d trailing bytes", len(rest))
	}

	out := make([]domain.Coordinates, 0, len(coords))
	for _, c := range coords {
		out = append(out, domain.Coordinates{Lat: c[0], Lon: c[1]})
	}
	return out, nil
}

// EncodePath encodes coordinates as a Google encoded polyline (1e-5 precision).
func EncodePath(path []domain.Coordinates) string {
	coords := make([][]float64, 0, len(path))
	for _, c := range path {
		coords = append(coords, []float64{c.Lat, c.Lon})
	}
	return string(polyline.EncodeCoords(coords))
}
