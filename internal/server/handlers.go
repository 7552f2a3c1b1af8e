// Package server handles HTTP requests and middleware.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"net/http"
	"strings"

	"github.com/woozymasta/quakemap/internal/feed"
	"github.com/woozymasta/quakemap/internal/mapview"
	"github.com/woozymasta/quakemap/internal/quake"
	"github.com/woozymasta/quakemap/internal/tiles"

	"github.com/rs/zerolog/log"
)

// legendRow is the JSON form of a legend entry.
type legendRow struct {
	Label string      `json:"label"`
	Color quake.Color `json:"color"`
	Lower int         `json:"lower"`
	Upper *int        `json:"upper,omitempty"`
}

// BuildView runs the whole pipeline once: load the feed, map features to
// markers and assemble the map. A failed load still yields a complete map.
func (s *ServerContext) BuildView(ctx context.Context) (mapview.View, feed.Result) {
	res := s.Loader.Load(ctx)
	overlay := quake.BuildOverlay(res.Features, s.Popup)

	return mapview.Assemble(s.Config, overlay, res.Err), res
}

// HandleIndex serves the map page.
func (s *ServerContext) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	view, res := s.BuildView(r.Context())

	var buf bytes.Buffer
	if err := s.Renderer.Render(&buf, view); err != nil {
		log.Error().Err(err).Msg("Failed to render page")
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	if !res.Ok() {
		w.Header().Set("X-Feed-Error", "1")
	}
	_, _ = w.Write(buf.Bytes())
}

// HandleEarthquakes serves the overlay as GeoJSON.
func (s *ServerContext) HandleEarthquakes(w http.ResponseWriter, r *http.Request) {
	res := s.Loader.Load(r.Context())
	if !res.Ok() {
		writeJSON(w, http.StatusBadGateway, map[string]string{
			"error":  mapview.BannerText,
			"detail": res.Err.Error(),
		})
		return
	}

	overlay := quake.BuildOverlay(res.Features, s.Popup)

	w.Header().Set("Content-Type", "application/geo+json")
	// Ignoring error as we cannot handle client disconnects
	_ = json.NewEncoder(w).Encode(overlay.GeoJSON())
}

// HandleLegend serves the legend bands.
func (s *ServerContext) HandleLegend(w http.ResponseWriter, r *http.Request) {
	entries := quake.Legend()

	rows := make([]legendRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, legendRow{Label: e.Label(), Color: e.Color, Lower: e.Lower, Upper: e.Upper})
	}

	writeJSON(w, http.StatusOK, rows)
}

// HandleBasemaps serves the basemap descriptors. Tile URLs are only included
// when they do not carry the access token.
func (s *ServerContext) HandleBasemaps(w http.ResponseWriter, r *http.Request) {
	maps := mapview.Basemaps(s.Config)
	if !s.Config.Tiles.Proxy {
		for i := range maps {
			maps[i].URL = ""
		}
	}

	writeJSON(w, http.StatusOK, maps)
}

// HandleFavicon serves the site favicon.
func (s *ServerContext) HandleFavicon(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/favicon.ico" {
		http.NotFound(w, r)
		return
	}

	icon := s.Renderer.Favicon()
	h := fnv.New32a()
	_, _ = h.Write(icon)
	etag := fmt.Sprintf(`"%x"`, h.Sum32())
	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(icon)
}

// HandleTile proxies one basemap tile.
func (s *ServerContext) HandleTile(w http.ResponseWriter, r *http.Request) {
	// Path: /tiles/{style}/{z}/{x}/{y}
	style, coord, err := tiles.ParsePath(strings.TrimPrefix(r.URL.Path, "/tiles/"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	tile, err := s.Tiles.Fetch(r.Context(), style, coord)
	if errors.Is(err, tiles.ErrUnknownStyle) || errors.Is(err, tiles.ErrCoordinate) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", tile.ContentType)
	if tile.Fallback {
		w.Header().Set("Cache-Control", "public, max-age=60")
	} else {
		w.Header().Set("Cache-Control", "public, max-age=3600")
	}
	_, _ = w.Write(tile.Data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
