package models

import "fmt"

// Coordinates represents a geographical point defined by its latitude and longitude.
type Coordinates struct {
	Latitude  float64 // Latitude of the geographical point, in decimal degrees.
	Longitude float64 // Longitude of the geographical point, in decimal degrees.
}

// Validate checks that the coordinates lie within the valid degree ranges:
// latitude in [-90, 90] and longitude in [-180, 180].
func (c Coordinates) Validate() error {
	if c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("latitude %v is out of range [-90, 90]", c.Latitude)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("longitude %v is out of range [-180, 180]", c.Longitude)
	}
	return nil
}
