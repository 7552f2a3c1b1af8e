package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woozymasta/quakemap/internal/quake"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, DefaultFeedURL, cfg.FeedURL)
	assert.Equal(t, Position{Lat: 37.09, Lng: -95.71}, cfg.Center)
	assert.Equal(t, 5, cfg.Zoom)
	assert.Equal(t, "map", cfg.Container)
	assert.Equal(t, "bottomright", cfg.Legend.Position)
	assert.Equal(t, 18, cfg.Tiles.MaxZoom)
	assert.Equal(t, []string{"mapbox.streets", "mapbox.dark", "mapbox.satellite"}, cfg.Styles())
	assert.Equal(t, quake.DefaultTimeLayout, cfg.Popup.TimeLayout)
}

func TestLoadMergesDefaults(t *testing.T) {
	path := writeConfig(t, `
zoom: 3
center:
  lat: 35.0
  lng: 139.0
tiles:
  access_token: pk.from-file
  proxy: true
basemaps:
  - name: Streets
    style: mapbox.streets
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 3, cfg.Zoom)
	assert.Equal(t, Position{Lat: 35, Lng: 139}, cfg.Center)
	assert.Equal(t, "pk.from-file", cfg.Tiles.AccessToken)
	assert.True(t, cfg.Tiles.Proxy)
	assert.Equal(t, 18, cfg.Tiles.MaxZoom)
	assert.Equal(t, DefaultFeedURL, cfg.FeedURL)
	assert.Equal(t, []Layer{{Name: "Streets", Style: "mapbox.streets"}}, cfg.Basemaps)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeConfig(t, "zoom: [1"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"empty feed":     func(c *Config) { c.FeedURL = "" },
		"no basemaps":    func(c *Config) { c.Basemaps = nil },
		"unnamed layer":  func(c *Config) { c.Basemaps[1].Name = "" },
		"no tile url":    func(c *Config) { c.Tiles.URL = "" },
		"bad max zoom":   func(c *Config) { c.Tiles.MaxZoom = 0 },
		"zoom too large": func(c *Config) { c.Zoom = 19 },
		"negative zoom":  func(c *Config) { c.Zoom = -1 },
		"bad time zone":  func(c *Config) { c.Popup.TimeZone = "Mars/Olympus" },
	}

	for name, mutate := range cases {
		cfg := Default()
		mutate(cfg)
		assert.Error(t, cfg.Validate(), name)
	}
}

func TestLocation(t *testing.T) {
	cfg := Default()
	cfg.Popup.TimeZone = ""

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}
