package models

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format used by fdsnws query parameters
const DateLayout = "2006-01-02"

// Magnitude slider bounds
const (
	MinMagnitudeFloor   = 0.0
	MinMagnitudeCeiling = 10.0
)

// SeismicQuery selects events in a date range at or above a magnitude
type SeismicQuery struct {
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	MinMagnitude float64   `json:"min_magnitude"`
}

// NewSeismicQuery parses YYYY-MM-DD dates and clamps the magnitude to 0..10.
// Start after End is passed through; the remote service decides.
func NewSeismicQuery(start, end string, minMagnitude float64) (SeismicQuery, error) {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return SeismicQuery{}, fmt.Errorf("invalid start date %q: %w", start, err)
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return SeismicQuery{}, fmt.Errorf("invalid end date %q: %w", end, err)
	}
	return SeismicQuery{Start: s, End: e, MinMagnitude: ClampMagnitude(minMagnitude)}, nil
}

// ClampMagnitude bounds a magnitude to the selectable range
func ClampMagnitude(m float64) float64 {
	if m < MinMagnitudeFloor {
		return MinMagnitudeFloor
	}
	if m > MinMagnitudeCeiling {
		return MinMagnitudeCeiling
	}
	return m
}

// QuakeCollection is the GeoJSON FeatureCollection returned by fdsnws
type QuakeCollection struct {
	Type     string         `json:"type"`
	Metadata *QuakeMetadata `json:"metadata,omitempty"`
	Features []QuakeFeature `json:"features"`
}

// QuakeMetadata carries the response header block
type QuakeMetadata struct {
	Generated int64  `json:"generated"`
	URL       string `json:"url"`
	Title     string `json:"title"`
	Status    int    `json:"status"`
	Count     int    `json:"count"`
}

// QuakeFeature is one event
type QuakeFeature struct {
	ID         string          `json:"id"`
	Properties QuakeProperties `json:"properties"`
	Geometry   QuakeGeometry   `json:"geometry"`
}

// QuakeProperties holds the event attributes used by the dashboard
type QuakeProperties struct {
	Mag   *float64 `json:"mag"`
	Place *string  `json:"place"`
	Time  *int64   `json:"time"` // epoch milliseconds
	URL   string   `json:"url,omitempty"`
}

// QuakeGeometry holds [longitude, latitude, depth_km]
type QuakeGeometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// QuakeRow is one normalized event. Magnitude and Place stay nil when absent.
type QuakeRow struct {
	Magnitude *float64  `json:"magnitude"`
	Place     *string   `json:"place"`
	Time      time.Time `json:"time"`
	Longitude float64   `json:"longitude"`
	Latitude  float64   `json:"latitude"`
	DepthKm   float64   `json:"depth_km"`
}

// MagnitudeOr returns the magnitude or a fallback when absent
func (r QuakeRow) MagnitudeOr(fallback float64) float64 {
	if r.Magnitude == nil {
		return fallback
	}
	return *r.Magnitude
}

// PlaceOr returns the place or a fallback when absent
func (r QuakeRow) PlaceOr(fallback string) string {
	if r.Place == nil {
		return fallback
	}
	return *r.Place
}

// QuakeTable is an ordered list of events in response order
type QuakeTable []QuakeRow
