package quake

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/samber/lo"
)

// Overlay is the earthquake layer: one marker per feed feature, in feed order.
type Overlay struct {
	markers []Marker
}

// BuildOverlay maps every feature to a marker.
func BuildOverlay(features []Feature, opts PopupOptions) Overlay {
	opts = opts.withDefaults()

	return Overlay{
		markers: lo.Map(features, func(f Feature, _ int) Marker {
			return NewMarker(f, opts)
		}),
	}
}

// Len returns the number of markers.
func (o Overlay) Len() int {
	return len(o.markers)
}

// Markers returns a copy of the markers.
func (o Overlay) Markers() []Marker {
	out := make([]Marker, len(o.markers))
	copy(out, o.markers)

	return out
}

// GeoJSON encodes the overlay as point features carrying their style and popup.
func (o Overlay) GeoJSON() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, m := range o.markers {
		f := geojson.NewFeature(orb.Point{m.Lng, m.Lat})
		if m.ID != "" {
			f.ID = m.ID
		}
		f.Properties["popup"] = m.Popup
		f.Properties["radius"] = m.Style.Radius
		f.Properties["fillColor"] = m.Style.FillColor.String()
		f.Properties["weight"] = m.Style.Weight
		f.Properties["opacity"] = m.Style.Opacity
		f.Properties["fillOpacity"] = m.Style.FillOpacity
		fc.Append(f)
	}

	return fc
}
