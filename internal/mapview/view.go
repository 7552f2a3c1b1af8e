package mapview

import (
	"github.com/paulmach/orb/geojson"

	"github.com/woozymasta/quakemap/internal/config"
	"github.com/woozymasta/quakemap/internal/quake"
)

// BannerText is shown above the map when the feed could not be loaded.
const BannerText = "Earthquake data is currently unavailable."

// Control is the layer switcher configuration.
type Control struct {
	Collapsed bool `json:"collapsed"`
}

// LegendPanel is the static legend control.
type LegendPanel struct {
	Position string              `json:"position"`
	Entries  []quake.LegendEntry `json:"-"`
}

// OverlayLayer is the earthquake layer as the page sees it.
type OverlayLayer struct {
	Data   *geojson.FeatureCollection `json:"data"`
	Name   string                     `json:"name"`
	Active bool                       `json:"active"`
}

// Banner reports a failed feed load without blocking the map.
type Banner struct {
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

// View is the fully assembled map, ready to render.
type View struct {
	Banner    *Banner         `json:"banner,omitempty"`
	Container string          `json:"container"`
	Basemaps  []Basemap       `json:"basemaps"`
	Overlay   OverlayLayer    `json:"overlay"`
	Legend    LegendPanel     `json:"legend"`
	Control   Control         `json:"control"`
	Center    config.Position `json:"center"`
	Zoom      int             `json:"zoom"`
	markers   int
}

// Assemble builds the map exactly once from the overlay. A non-nil loadErr adds a
// banner; the basemaps, control and legend are built either way.
func Assemble(cfg *config.Config, overlay quake.Overlay, loadErr error) View {
	v := View{
		Container: cfg.Container,
		Center:    cfg.Center,
		Zoom:      cfg.Zoom,
		Basemaps:  Basemaps(cfg),
		Overlay: OverlayLayer{
			Name:   cfg.Overlay,
			Active: true,
			Data:   overlay.GeoJSON(),
		},
		Control: Control{Collapsed: false},
		Legend: LegendPanel{
			Position: cfg.Legend.Position,
			Entries:  quake.Legend(),
		},
		markers: overlay.Len(),
	}

	if loadErr != nil {
		v.Banner = &Banner{Message: BannerText, Detail: loadErr.Error()}
	}

	return v
}

// Markers returns the number of earthquakes on the overlay.
func (v View) Markers() int {
	return v.markers
}

// ActiveBasemap returns the basemap shown on load.
func (v View) ActiveBasemap() (Basemap, bool) {
	for _, b := range v.Basemaps {
		if b.Active {
			return b, true
		}
	}

	return Basemap{}, false
}

// LegendHTML renders the legend rows.
func (v View) LegendHTML() string {
	return quake.LegendHTML(v.Legend.Entries)
}
