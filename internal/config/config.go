// Package config handles configuration loading and shared data structures.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/woozymasta/quakemap/internal/quake"
)

// DefaultFeedURL is the USGS summary feed covering the past seven days.
const DefaultFeedURL = "https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/all_week.geojson"

// DefaultAttribution is shown in the map corner for every basemap.
const DefaultAttribution = `Map data &copy; <a href="https://www.openstreetmap.org/">OpenStreetMap</a> contributors, ` +
	`<a href="https://creativecommons.org/licenses/by-sa/2.0/">CC-BY-SA</a>, ` +
	`Imagery © <a href="https://www.mapbox.com/">Mapbox</a>`

// Config represents the root configuration file structure.
type Config struct {
	FeedURL   string   `yaml:"feed_url" json:"-"`
	Container string   `yaml:"container" json:"container"`
	Overlay   string   `yaml:"overlay" json:"overlay"`
	Tiles     Tiles    `yaml:"tiles" json:"tiles"`
	Basemaps  []Layer  `yaml:"basemaps" json:"basemaps"`
	Popup     Popup    `yaml:"popup" json:"-"`
	Legend    Legend   `yaml:"legend" json:"legend"`
	Center    Position `yaml:"center" json:"center"`
	Zoom      int      `yaml:"zoom" json:"zoom"`
}

// Position is a latitude/longitude pair.
type Position struct {
	Lat float64 `yaml:"lat" json:"lat"`
	Lng float64 `yaml:"lng" json:"lng"`
}

// Tiles is the tile source shared by every basemap.
type Tiles struct {
	URL         string `yaml:"url" json:"-"`
	Attribution string `yaml:"attribution" json:"attribution"`
	AccessToken string `yaml:"access_token" json:"-"`
	MaxZoom     int    `yaml:"max_zoom" json:"max_zoom"`
	TileSize    int    `yaml:"tile_size,omitempty" json:"-"`
	Proxy       bool   `yaml:"proxy,omitempty" json:"-"`
	WebP        bool   `yaml:"webp,omitempty" json:"-"`
}

// Layer names a basemap and the tile style it uses.
type Layer struct {
	Name  string `yaml:"name" json:"name"`
	Style string `yaml:"style" json:"style"`
}

// Popup controls how marker popups render the event time.
type Popup struct {
	TimeLayout string `yaml:"time_layout" json:"-"`
	TimeZone   string `yaml:"time_zone" json:"-"`
}

// Legend controls the legend panel placement.
type Legend struct {
	Position string `yaml:"position" json:"position"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		FeedURL:   DefaultFeedURL,
		Container: "map",
		Overlay:   "Earthquakes",
		Center:    Position{Lat: 37.09, Lng: -95.71},
		Zoom:      5,
		Tiles: Tiles{
			URL:         "https://api.tiles.mapbox.com/v4/{id}/{z}/{x}/{y}.png?access_token={accessToken}",
			Attribution: DefaultAttribution,
			MaxZoom:     18,
			TileSize:    256,
		},
		Basemaps: []Layer{
			{Name: "Street Map", Style: "mapbox.streets"},
			{Name: "Dark Map", Style: "mapbox.dark"},
			{Name: "Satellite", Style: "mapbox.satellite"},
		},
		Popup: Popup{
			TimeLayout: quake.DefaultTimeLayout,
			TimeZone:   "UTC",
		},
		Legend: Legend{Position: "bottomright"},
	}
}

// Load reads and parses the YAML configuration file from the specified path.
// Values missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// Validate reports the first problem that would prevent the map from being assembled.
func (c *Config) Validate() error {
	if c.FeedURL == "" {
		return errors.New("feed_url must not be empty")
	}
	if len(c.Basemaps) == 0 {
		return errors.New("at least one basemap is required")
	}
	for i, b := range c.Basemaps {
		if b.Name == "" || b.Style == "" {
			return fmt.Errorf("basemap %d: name and style are required", i)
		}
	}
	if c.Tiles.URL == "" {
		return errors.New("tiles.url must not be empty")
	}
	if c.Tiles.MaxZoom <= 0 {
		return fmt.Errorf("tiles.max_zoom must be positive, got %d", c.Tiles.MaxZoom)
	}
	if c.Zoom < 0 || c.Zoom > c.Tiles.MaxZoom {
		return fmt.Errorf("zoom %d is outside [0, %d]", c.Zoom, c.Tiles.MaxZoom)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("popup.time_zone: %w", err)
	}

	return nil
}

// Location resolves the popup time zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Popup.TimeZone == "" {
		return time.UTC, nil
	}

	return time.LoadLocation(c.Popup.TimeZone)
}

// Styles returns the style ids of all configured basemaps.
func (c *Config) Styles() []string {
	styles := make([]string, 0, len(c.Basemaps))
	for _, b := range c.Basemaps {
		styles = append(styles, b.Style)
	}

	return styles
}
