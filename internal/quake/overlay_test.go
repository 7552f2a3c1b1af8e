package quake

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildOverlayOneMarkerPerFeature(t *testing.T) {
	features := make([]Feature, 0, 25)
	for i := 0; i < 25; i++ {
		features = append(features, Feature{
			ID:        fmt.Sprintf("ev%d", i),
			Place:     fmt.Sprintf("place %d", i),
			Time:      time.UnixMilli(1700000000000 + int64(i)*1000),
			Magnitude: float64(i)/2 - 1,
			Longitude: float64(i),
			Latitude:  float64(-i),
		})
	}

	o := BuildOverlay(features, PopupOptions{})
	require.Equal(t, len(features), o.Len())

	for i, m := range o.Markers() {
		f := features[i]
		assert.Equal(t, f.ID, m.ID)
		assert.Equal(t, 4*f.Magnitude, m.Style.Radius)
		assert.Equal(t, ColorOf(f.Magnitude), m.Style.FillColor)
		assert.Contains(t, m.Popup, f.Place)
		assert.Contains(t, m.Popup, FormatMagnitude(f.Magnitude))
	}
}

func TestBuildOverlayEmpty(t *testing.T) {
	o := BuildOverlay(nil, PopupOptions{})
	assert.Zero(t, o.Len())

	data, err := json.Marshal(o.GeoJSON())
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"FeatureCollection","features":[]}`, string(data))
}

func TestOverlayMarkersIsCopy(t *testing.T) {
	o := BuildOverlay([]Feature{renoFeature()}, PopupOptions{})

	ms := o.Markers()
	ms[0].Popup = "changed"

	assert.NotEqual(t, "changed", o.Markers()[0].Popup)
}

func TestOverlayGeoJSON(t *testing.T) {
	o := BuildOverlay([]Feature{renoFeature()}, PopupOptions{})

	fc := o.GeoJSON()
	require.Len(t, fc.Features, 1)

	f := fc.Features[0]
	assert.Equal(t, orb.Point{-119.8, 39.5}, f.Geometry)
	assert.Equal(t, "nc75000000", f.ID)
	assert.Equal(t, "rgb(255,135,135)", f.Properties["fillColor"])
	assert.InDelta(t, 16.8, f.Properties["radius"], 1e-9)
	assert.Contains(t, f.Properties["popup"], "10km N of Reno, NV")
}
