package main

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"time"

	"github.com/woozymasta/quakemap/internal/config"
	"github.com/woozymasta/quakemap/internal/feed"
	"github.com/woozymasta/quakemap/internal/logger"
	"github.com/woozymasta/quakemap/internal/mapview"
	"github.com/woozymasta/quakemap/internal/page"
	"github.com/woozymasta/quakemap/internal/quake"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile  string        `short:"c" long:"config"       env:"CONFIG_FILE"         description:"Path to configuration file, built-in defaults when empty"`
	Output      string        `short:"o" long:"out"                                    description:"Output HTML file" default:"index.html"`
	FeedURL     string        `short:"f" long:"feed-url"     env:"FEED_URL"            description:"Earthquake GeoJSON feed URL"`
	AccessToken string        `short:"t" long:"access-token" env:"MAPBOX_ACCESS_TOKEN" description:"Tile provider access token"`
	Title       string        `long:"title"                                            description:"Page title"`
	Timeout     time.Duration `long:"timeout"                env:"HTTP_TIMEOUT"        description:"Feed request timeout" default:"15s"`
	Strict      bool          `long:"strict"                                           description:"Exit with an error when the feed cannot be loaded"`
}

func main() {
	_ = godotenv.Load()

	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	cfg := config.Default()
	if opts.ConfigFile != "" {
		var err error
		if cfg, err = config.Load(opts.ConfigFile); err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}
	}
	if opts.FeedURL != "" {
		cfg.FeedURL = opts.FeedURL
	}
	if opts.AccessToken != "" {
		cfg.Tiles.AccessToken = opts.AccessToken
	}
	// a static page has no server to proxy tiles
	cfg.Tiles.Proxy = false

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	loc, err := cfg.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid time zone")
	}

	renderer, err := page.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to prepare page")
	}
	if opts.Title != "" {
		renderer.Title = opts.Title
	}

	loader := feed.New(&http.Client{Timeout: opts.Timeout}, cfg.FeedURL)
	res := loader.Load(context.Background())
	if !res.Ok() && opts.Strict {
		log.Fatal().Err(res.Err).Msg("Feed unavailable")
	}

	overlay := quake.BuildOverlay(res.Features, quake.PopupOptions{Location: loc, TimeLayout: cfg.Popup.TimeLayout})
	view := mapview.Assemble(cfg, overlay, res.Err)

	var buf bytes.Buffer
	if err := renderer.Render(&buf, view); err != nil {
		log.Fatal().Err(err).Msg("Failed to render page")
	}

	if err := os.WriteFile(opts.Output, buf.Bytes(), 0644); err != nil {
		log.Fatal().Err(err).Str("path", opts.Output).Msg("Failed to write page")
	}

	log.Info().
		Str("path", opts.Output).
		Int("markers", view.Markers()).
		Int("bytes", buf.Len()).
		Bool("feed_ok", res.Ok()).
		Msg("Page rendered")
}
