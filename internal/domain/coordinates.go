package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Immutable geographic coordinates in WGS84 decimal degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Return coordinates as "lat,lon" for external API compatibility.
func (c Coordinates) String() string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lon, 'f', -1, 64)
}

// ParseCoordinates reads a "lat,lon" pair.
func ParseCoordinates(s string) (Coordinates, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Coordinates{}, fmt.Errorf("parse coordinates: %q is not a lat,lon pair", s)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("parse coordinates: latitude %q: %w", parts[0], err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("parse coordinates: longitude %q: %w", parts[1], err)
	}

	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return Coordinates{}, fmt.Errorf("parse coordinates: %q out of range", s)
	}

	return Coordinates{Lat: lat, Lon: lon}, nil
}
