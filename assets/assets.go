// Package assets embeds the static files of the web page.
package assets

import _ "embed"

// IndexTemplate is the page skeleton rendered for every map view.
//
//go:embed index.html.tpl
var IndexTemplate string

// Style is the page stylesheet.
//
//go:embed style.css
var Style string

// Script bootstraps Leaflet from the embedded view.
//
//go:embed script.js
var Script string

// Favicon is the site icon.
//
//go:embed favicon.svg
var Favicon string
