// Package geo provides coordinate validation, great-circle distance and
// display formatting for the place discovery pipeline.
package geo

import (
	"fmt"
	"math"
)

// Coordinates is a WGS84 latitude/longitude pair.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate reports whether the pair is within valid WGS84 bounds.
func (c Coordinates) Validate() error {
	if c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", c.Latitude)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", c.Longitude)
	}
	return nil
}

const earthRadiusMeters = 6371000

// Distance returns the haversine great-circle distance between a and b
// in metres.
func Distance(a, b Coordinates) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// FormatDistance renders a distance in metres for display: whole metres
// under one kilometre, otherwise kilometres with one decimal place.
func FormatDistance(meters float64) string {
	// Compare the rounded value so 999.5m becomes 1.0km, not 1000m.
	if rounded := math.Round(meters); rounded < 1000 {
		return fmt.Sprintf("%dm", int(rounded))
	}
	return fmt.Sprintf("%.1fkm", meters/1000)
}
