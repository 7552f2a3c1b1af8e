// Package quake turns earthquake feed records into styled map markers.
package quake

import (
	"errors"
	"fmt"
	"time"

	"github.com/woozymasta/quakemap/internal/geo"
)

// ErrCoordinates is returned for features without a longitude/latitude pair.
var ErrCoordinates = errors.New("feature has no coordinates")

// Feature is one earthquake record from the feed.
type Feature struct {
	Time      time.Time `json:"time" yaml:"time"`
	ID        string    `json:"id" yaml:"id"`
	Place     string    `json:"place" yaml:"place"`
	Magnitude float64   `json:"magnitude" yaml:"magnitude"`
	Longitude float64   `json:"longitude" yaml:"longitude"`
	Latitude  float64   `json:"latitude" yaml:"latitude"`
	Depth     float64   `json:"depth" yaml:"depth"` // km
}

// FromGeoJSON converts a feed feature. A null magnitude becomes 0 and a null place an empty string.
func FromGeoJSON(f geo.Feature) (Feature, error) {
	coords := f.Geometry.Coordinates
	if len(coords) < 2 {
		return Feature{}, fmt.Errorf("%w: id %q", ErrCoordinates, f.ID)
	}

	q := Feature{
		ID:        f.ID,
		Time:      time.UnixMilli(f.Properties.Time),
		Longitude: coords[0],
		Latitude:  coords[1],
	}
	if len(coords) > 2 {
		q.Depth = coords[2]
	}
	if f.Properties.Mag != nil {
		q.Magnitude = *f.Properties.Mag
	}
	if f.Properties.Place != nil {
		q.Place = *f.Properties.Place
	}

	return q, nil
}
