package quake

import (
	"html"
	"strconv"
	"strings"
	"time"
)

// DefaultTimeLayout renders popup timestamps.
const DefaultTimeLayout = "Mon Jan 02 2006 15:04:05 MST"

// MarkerStyle is the circle marker appearance derived from a magnitude.
type MarkerStyle struct {
	FillColor   Color   `json:"fillColor" yaml:"fill_color"`
	Radius      float64 `json:"radius" yaml:"radius"`
	Weight      float64 `json:"weight" yaml:"weight"`
	Opacity     float64 `json:"opacity" yaml:"opacity"`
	FillOpacity float64 `json:"fillOpacity" yaml:"fill_opacity"`
}

// StyleOf derives the marker style for a magnitude.
func StyleOf(m float64) MarkerStyle {
	return MarkerStyle{
		Radius:      4 * m,
		FillColor:   ColorOf(m),
		Weight:      1,
		Opacity:     1,
		FillOpacity: 1,
	}
}

// PopupOptions control popup text rendering.
type PopupOptions struct {
	Location   *time.Location
	TimeLayout string
}

func (o PopupOptions) withDefaults() PopupOptions {
	if o.Location == nil {
		o.Location = time.UTC
	}
	if o.TimeLayout == "" {
		o.TimeLayout = DefaultTimeLayout
	}

	return o
}

// FormatMagnitude prints a magnitude in its shortest decimal form.
func FormatMagnitude(m float64) string {
	return strconv.FormatFloat(m, 'f', -1, 64)
}

// PopupText builds the popup markup: place, event time and magnitude.
func PopupText(f Feature, opts PopupOptions) string {
	opts = opts.withDefaults()

	var b strings.Builder
	b.WriteString("<h3>")
	b.WriteString(html.EscapeString(f.Place))
	b.WriteString("</h3><hr><p>")
	b.WriteString(html.EscapeString(f.Time.In(opts.Location).Format(opts.TimeLayout)))
	b.WriteString("</p><hr><p>Magnitude: ")
	b.WriteString(FormatMagnitude(f.Magnitude))
	b.WriteString("</p>")

	return b.String()
}

// Marker is a styled point with its popup.
type Marker struct {
	ID    string      `json:"id,omitempty" yaml:"id,omitempty"`
	Popup string      `json:"popup" yaml:"popup"`
	Style MarkerStyle `json:"style" yaml:"style"`
	Lat   float64     `json:"lat" yaml:"lat"`
	Lng   float64     `json:"lng" yaml:"lng"`
}

// NewMarker places a marker at the feature's latitude/longitude.
func NewMarker(f Feature, opts PopupOptions) Marker {
	return Marker{
		ID:    f.ID,
		Lat:   f.Latitude,
		Lng:   f.Longitude,
		Style: StyleOf(f.Magnitude),
		Popup: PopupText(f, opts),
	}
}
