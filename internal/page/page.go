// Package page renders an assembled map view into a self-contained HTML document.
package page

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/woozymasta/quakemap/assets"
	"github.com/woozymasta/quakemap/internal/mapview"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
	"github.com/tdewolff/minify/v2/svg"
)

// DefaultLeafletURL hosts leaflet.js and leaflet.css.
const DefaultLeafletURL = "https://unpkg.com/leaflet@1.9.4/dist"

// DefaultTitle is the document title.
const DefaultTitle = "Earthquakes of the Past Week"

// Data is what the index template receives.
type Data struct {
	View       mapview.View
	Title      string
	LeafletURL string
	CSS        template.CSS
	JS         template.JS
	Legend     template.HTML
}

// Renderer holds the parsed template and the minified static parts.
type Renderer struct {
	m          *minify.M
	tmpl       *template.Template
	css        template.CSS
	js         template.JS
	favicon    []byte
	Title      string
	LeafletURL string
}

// New parses the template and minifies stylesheet, script and icon once.
func New() (*Renderer, error) {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", html.Minify)
	m.AddFunc("text/javascript", js.Minify)
	m.AddFunc("image/svg+xml", svg.Minify)

	cssMin, err := m.String("text/css", assets.Style)
	if err != nil {
		return nil, fmt.Errorf("minify CSS: %w", err)
	}
	jsMin, err := m.String("text/javascript", assets.Script)
	if err != nil {
		return nil, fmt.Errorf("minify JS: %w", err)
	}
	svgMin, err := m.String("image/svg+xml", assets.Favicon)
	if err != nil {
		return nil, fmt.Errorf("minify SVG: %w", err)
	}

	tmpl, err := template.New("index").Parse(assets.IndexTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}

	return &Renderer{
		m:          m,
		tmpl:       tmpl,
		css:        template.CSS(cssMin),
		js:         template.JS(jsMin),
		favicon:    []byte(svgMin),
		Title:      DefaultTitle,
		LeafletURL: DefaultLeafletURL,
	}, nil
}

// Favicon returns the minified SVG icon.
func (r *Renderer) Favicon() []byte {
	return r.favicon
}

// Render writes the minified document for v.
func (r *Renderer) Render(w io.Writer, v mapview.View) error {
	var buf bytes.Buffer
	err := r.tmpl.Execute(&buf, Data{
		View:       v,
		Title:      r.Title,
		LeafletURL: r.LeafletURL,
		CSS:        r.css,
		JS:         r.js,
		Legend:     template.HTML(v.LegendHTML()),
	})
	if err != nil {
		return fmt.Errorf("execute template: %w", err)
	}

	if err := r.m.Minify("text/html", w, &buf); err != nil {
		return fmt.Errorf("minify HTML: %w", err)
	}

	return nil
}
