package server

import (
	"net/http"

	"github.com/woozymasta/quakemap/internal/config"
	"github.com/woozymasta/quakemap/internal/feed"
	"github.com/woozymasta/quakemap/internal/mapview"
	"github.com/woozymasta/quakemap/internal/page"
	"github.com/woozymasta/quakemap/internal/quake"
	"github.com/woozymasta/quakemap/internal/tiles"

	"github.com/rs/zerolog/log"
)

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	Config   *config.Config
	Loader   *feed.Loader
	Renderer *page.Renderer
	Tiles    *tiles.Proxy // nil unless the tile proxy is enabled
	Popup    quake.PopupOptions
}

// NewServerContext validates the configuration and wires the loader, renderer
// and, when enabled, the tile proxy.
func NewServerContext(cfg *config.Config, client *http.Client) (*ServerContext, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	renderer, err := page.New()
	if err != nil {
		return nil, err
	}

	s := &ServerContext{
		Config:   cfg,
		Loader:   feed.New(client, cfg.FeedURL),
		Renderer: renderer,
		Popup: quake.PopupOptions{
			Location:   loc,
			TimeLayout: cfg.Popup.TimeLayout,
		},
	}

	if cfg.Tiles.Proxy {
		s.Tiles, err = tiles.New(client, mapview.NewTileSource(cfg.Tiles), tiles.Options{
			Styles:   cfg.Styles(),
			TileSize: cfg.Tiles.TileSize,
			WebP:     cfg.Tiles.WebP,
		})
		if err != nil {
			return nil, err
		}
	}

	if cfg.Tiles.AccessToken == "" {
		log.Warn().Msg("No tile access token configured, basemap tiles will likely fail to load")
	}

	log.Info().
		Str("feed", cfg.FeedURL).
		Int("basemaps", len(cfg.Basemaps)).
		Bool("tile_proxy", cfg.Tiles.Proxy).
		Bool("webp", cfg.Tiles.WebP).
		Msg("Server context initialized successfully")

	return s, nil
}

// Mux registers every route.
func (s *ServerContext) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/earthquakes", s.HandleEarthquakes)
	mux.HandleFunc("/api/legend", s.HandleLegend)
	mux.HandleFunc("/api/basemaps", s.HandleBasemaps)
	mux.HandleFunc("/favicon.ico", s.HandleFavicon)
	if s.Tiles != nil {
		mux.HandleFunc("/tiles/", s.HandleTile)
	}
	mux.HandleFunc("/", s.HandleIndex)

	return mux
}
