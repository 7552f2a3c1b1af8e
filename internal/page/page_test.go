package page

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woozymasta/quakemap/internal/config"
	"github.com/woozymasta/quakemap/internal/mapview"
	"github.com/woozymasta/quakemap/internal/quake"
)

func render(t *testing.T, v mapview.View) string {
	t.Helper()

	r, err := New()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, v))

	return buf.String()
}

func TestRender(t *testing.T) {
	overlay := quake.BuildOverlay([]quake.Feature{{
		ID:        "nc1",
		Place:     "10km N of Reno, NV",
		Time:      time.UnixMilli(1700000000000),
		Magnitude: 4.2,
		Longitude: -119.8,
		Latitude:  39.5,
	}}, quake.PopupOptions{})

	out := render(t, mapview.Assemble(config.Default(), overlay, nil))

	assert.Contains(t, out, DefaultTitle)
	assert.Contains(t, out, "quakemap-view")
	assert.Contains(t, out, `"container":"map"`)
	assert.Contains(t, out, `"fillColor":"rgb(255,135,135)"`)
	assert.Contains(t, out, "10km N of Reno, NV")
	assert.Contains(t, out, "mapbox.streets")
	assert.Contains(t, out, "Magnitude 0")
	assert.Contains(t, out, "Magnitude 8+")
	assert.Contains(t, out, "L.control.layers")
	assert.NotContains(t, out, mapview.BannerText)
}

func TestRenderEscapesPopupMarkup(t *testing.T) {
	overlay := quake.BuildOverlay([]quake.Feature{{Place: "A", Magnitude: 1}}, quake.PopupOptions{})

	out := render(t, mapview.Assemble(config.Default(), overlay, nil))

	// popup markup travels inside JSON and must not close the script element
	assert.NotContains(t, out, "<h3>A</h3>")
	assert.Contains(t, out, `\u003ch3\u003eA\u003c/h3\u003e`)
}

func TestRenderBanner(t *testing.T) {
	v := mapview.Assemble(config.Default(), quake.Overlay{}, errors.New("feed timeout"))

	out := render(t, v)

	assert.Contains(t, out, mapview.BannerText)
	assert.Contains(t, out, "feed timeout")
	assert.Contains(t, out, `"features":[]`)
	assert.Contains(t, out, "Magnitude 8+")
}

func TestFavicon(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	assert.Contains(t, string(r.Favicon()), "<svg")
}
