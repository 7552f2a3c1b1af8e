package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/woozymasta/quakemap/internal/config"
	"github.com/woozymasta/quakemap/internal/logger"
	"github.com/woozymasta/quakemap/internal/server"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile  string        `short:"c" long:"config"       env:"CONFIG_FILE"         description:"Path to configuration file, built-in defaults when empty"`
	Addr        string        `short:"a" long:"addr"         env:"LISTEN_ADDRESS"      description:"Address to listen on"          default:"0.0.0.0"`
	Port        int           `short:"p" long:"port"         env:"LISTEN_PORT"         description:"Port to listen on"             default:"8080"`
	FeedURL     string        `short:"f" long:"feed-url"     env:"FEED_URL"            description:"Earthquake GeoJSON feed URL"`
	AccessToken string        `short:"t" long:"access-token" env:"MAPBOX_ACCESS_TOKEN" description:"Tile provider access token"`
	Timeout     time.Duration `long:"timeout"                env:"HTTP_TIMEOUT"        description:"Upstream request timeout"      default:"15s"`
	TileProxy   bool          `long:"tile-proxy"             env:"TILE_PROXY"          description:"Serve tiles through this server"`
	WebP        bool          `long:"webp"                   env:"TILE_WEBP"           description:"Transcode proxied tiles to WebP"`
}

func main() {
	// .env is optional
	_ = godotenv.Load()

	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	// Setup Logging
	opts.Logger.Setup()

	// Load Config
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
	if opts.TileProxy {
		cfg.Tiles.Proxy = true
	}
	if opts.WebP {
		cfg.Tiles.WebP = true
	}

	client := &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
		},
		Timeout: opts.Timeout,
	}

	srvCtx, err := server.NewServerContext(cfg, client)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	handler := server.RequestLogger(srvCtx.Mux())

	listenAddr := fmt.Sprintf("%s:%d", opts.Addr, opts.Port)
	log.Info().
		Str("addr", listenAddr).
		Str("feed", cfg.FeedURL).
		Int("basemaps", len(cfg.Basemaps)).
		Msg("Web server started")

	if err := http.ListenAndServe(listenAddr, handler); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
