package quake

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woozymasta/quakemap/internal/geo"
)

func renoFeature() Feature {
	return Feature{
		ID:        "nc75000000",
		Place:     "10km N of Reno, NV",
		Time:      time.UnixMilli(1700000000000),
		Magnitude: 4.2,
		Longitude: -119.8,
		Latitude:  39.5,
		Depth:     5.0,
	}
}

func TestStyleOf(t *testing.T) {
	s := StyleOf(4.2)
	assert.InDelta(t, 16.8, s.Radius, 1e-9)
	assert.Equal(t, "rgb(255,135,135)", s.FillColor.String())
	assert.Equal(t, 1.0, s.Weight)
	assert.Equal(t, 1.0, s.Opacity)
	assert.Equal(t, 1.0, s.FillOpacity)
}

func TestNewMarker(t *testing.T) {
	m := NewMarker(renoFeature(), PopupOptions{})

	assert.Equal(t, 39.5, m.Lat)
	assert.Equal(t, -119.8, m.Lng)
	assert.InDelta(t, 16.8, m.Style.Radius, 1e-9)
	assert.Equal(t, "rgb(255,135,135)", m.Style.FillColor.String())
	assert.Contains(t, m.Popup, "10km N of Reno, NV")
	assert.Contains(t, m.Popup, "Magnitude: 4.2")
	assert.Contains(t, m.Popup, "Tue Nov 14 2023 22:13:20 UTC")
}

func TestPopupTextEscapesPlace(t *testing.T) {
	f := renoFeature()
	f.Place = `<script>alert("x")</script>`

	text := PopupText(f, PopupOptions{})
	assert.NotContains(t, text, "<script>")
	assert.Contains(t, text, "&lt;script&gt;")
}

func TestPopupTextLayoutAndZone(t *testing.T) {
	loc := time.FixedZone("PST", -8*3600)
	text := PopupText(renoFeature(), PopupOptions{Location: loc, TimeLayout: time.RFC3339})

	assert.Equal(t,
		"<h3>10km N of Reno, NV</h3><hr><p>2023-11-14T14:13:20-08:00</p><hr><p>Magnitude: 4.2</p>",
		text)
}

func TestFormatMagnitude(t *testing.T) {
	assert.Equal(t, "4.2", FormatMagnitude(4.2))
	assert.Equal(t, "-0.35", FormatMagnitude(-0.35))
	assert.Equal(t, "5", FormatMagnitude(5))
}

func TestFromGeoJSON(t *testing.T) {
	mag := 4.2
	place := "10km N of Reno, NV"

	f, err := FromGeoJSON(geo.Feature{
		ID:         "nc1",
		Properties: geo.Properties{Mag: &mag, Place: &place, Time: 1700000000000},
		Geometry:   geo.Geometry{Type: "Point", Coordinates: []float64{-119.8, 39.5, 5.0}},
	})
	require.NoError(t, err)

	assert.Equal(t, "nc1", f.ID)
	assert.Equal(t, place, f.Place)
	assert.Equal(t, 4.2, f.Magnitude)
	assert.Equal(t, -119.8, f.Longitude)
	assert.Equal(t, 39.5, f.Latitude)
	assert.Equal(t, 5.0, f.Depth)
	assert.Equal(t, int64(1700000000000), f.Time.UnixMilli())
}

func TestFromGeoJSONNulls(t *testing.T) {
	f, err := FromGeoJSON(geo.Feature{
		Geometry: geo.Geometry{Coordinates: []float64{10, 20}},
	})
	require.NoError(t, err)

	assert.Zero(t, f.Magnitude)
	assert.Empty(t, f.Place)
	assert.Zero(t, f.Depth)
}

func TestFromGeoJSONMissingCoordinates(t *testing.T) {
	_, err := FromGeoJSON(geo.Feature{ID: "bad", Geometry: geo.Geometry{Coordinates: []float64{1}}})
	assert.ErrorIs(t, err, ErrCoordinates)
}
