// Package geo holds the wire format of the upstream earthquake feed.
package geo

// FeatureCollection represents a collection of earthquake features.
// It follows the standard GeoJSON structure.
type FeatureCollection struct {
	Metadata *Metadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Type     string    `json:"type" yaml:"type"`
	Features []Feature `json:"features" yaml:"features"`
}

// Metadata is the feed header USGS attaches to every summary feed.
type Metadata struct {
	Count int `json:"count" yaml:"count"`
}

// Feature represents a single event with geometry and properties.
type Feature struct {
	Type       string     `json:"type" yaml:"type"`
	ID         string     `json:"id" yaml:"id"`
	Properties Properties `json:"properties" yaml:"properties"`
	Geometry   Geometry   `json:"geometry" yaml:"geometry"`
}

// Properties are the event attributes the map needs. Nullable fields are pointers.
type Properties struct {
	Mag   *float64 `json:"mag" yaml:"mag"`
	Place *string  `json:"place" yaml:"place"`
	Time  int64    `json:"time" yaml:"time"` // epoch milliseconds
}

// Geometry represents the event hypocenter.
type Geometry struct {
	Type        string    `json:"type" yaml:"type"`
	Coordinates []float64 `json:"coordinates" yaml:"coordinates"` // [Lon, Lat, Depth]
}
