// Package mapview assembles the map surface: basemaps, overlay, layer control and legend.
package mapview

import (
	"strconv"
	"strings"

	"github.com/woozymasta/quakemap/internal/config"
)

// TileSource is the tile configuration every basemap shares.
type TileSource struct {
	URL         string
	Attribution string
	AccessToken string
	MaxZoom     int
	Proxy       bool
}

// NewTileSource builds the shared tile source from configuration.
func NewTileSource(t config.Tiles) TileSource {
	return TileSource{
		URL:         t.URL,
		Attribution: t.Attribution,
		AccessToken: t.AccessToken,
		MaxZoom:     t.MaxZoom,
		Proxy:       t.Proxy,
	}
}

// Basemap is one named background layer.
type Basemap struct {
	Name        string `json:"name"`
	Style       string `json:"style"`
	URL         string `json:"url"`
	Attribution string `json:"attribution"`
	MaxZoom     int    `json:"maxZoom"`
	Active      bool   `json:"active"`
}

// Basemap instantiates a descriptor for one style id.
func (s TileSource) Basemap(name, style string) Basemap {
	return Basemap{
		Name:        name,
		Style:       style,
		URL:         s.TileURL(style),
		Attribution: s.Attribution,
		MaxZoom:     s.MaxZoom,
	}
}

// TileURL returns the browser-side tile template for a style, leaving {z}, {x} and {y} in place.
// With the proxy on, tiles go through this server and the token never reaches the page.
func (s TileSource) TileURL(style string) string {
	if s.Proxy {
		return "/tiles/" + style + "/{z}/{x}/{y}"
	}

	return strings.NewReplacer(
		"{id}", style,
		"{accessToken}", s.AccessToken,
	).Replace(s.URL)
}

// UpstreamURL expands the template for one tile, as fetched from the provider.
func (s TileSource) UpstreamURL(style string, z, x, y int) string {
	return strings.NewReplacer(
		"{id}", style,
		"{accessToken}", s.AccessToken,
		"{z}", strconv.Itoa(z),
		"{x}", strconv.Itoa(x),
		"{y}", strconv.Itoa(y),
	).Replace(s.URL)
}

// Basemaps creates a descriptor per configured layer. The first one is active.
func Basemaps(cfg *config.Config) []Basemap {
	src := NewTileSource(cfg.Tiles)

	maps := make([]Basemap, 0, len(cfg.Basemaps))
	for i, l := range cfg.Basemaps {
		b := src.Basemap(l.Name, l.Style)
		b.Active = i == 0
		maps = append(maps, b)
	}

	return maps
}
