// Package tiles proxies basemap tiles so the provider token stays on the server.
package tiles

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	"image/png"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/woozymasta/quakemap/internal/mapview"

	"github.com/chai2010/webp"
	"github.com/rs/zerolog/log"
	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	// ErrUnknownStyle is returned for a style id that is not a configured basemap.
	ErrUnknownStyle = errors.New("unknown tile style")
	// ErrCoordinate is returned for a tile outside the zoom pyramid.
	ErrCoordinate = errors.New("invalid tile coordinate")
)

// Coordinate represents a specific tile.
type Coordinate struct {
	Z, X, Y int
}

// Valid reports whether the tile exists at its zoom level.
func (c Coordinate) Valid(maxZoom int) bool {
	if c.Z < 0 || c.Z > maxZoom {
		return false
	}
	n := 1 << c.Z

	return c.X >= 0 && c.X < n && c.Y >= 0 && c.Y < n
}

// Tile is an encoded tile ready to send.
type Tile struct {
	ContentType string
	Data        []byte
	Fallback    bool
}

// Options configure a proxy.
type Options struct {
	Styles   []string
	TileSize int
	WebP     bool
}

// Proxy fetches tiles from the provider.
type Proxy struct {
	client      *http.Client
	source      mapview.TileSource
	styles      map[string]struct{}
	transparent Tile
	tileSize    int
	webp        bool
}

// New creates a proxy and pre-encodes the transparent fallback tile.
func New(client *http.Client, source mapview.TileSource, opts Options) (*Proxy, error) {
	if opts.TileSize <= 0 {
		opts.TileSize = 256
	}

	p := &Proxy{
		client:   client,
		source:   source,
		styles:   make(map[string]struct{}, len(opts.Styles)),
		tileSize: opts.TileSize,
		webp:     opts.WebP,
	}
	for _, s := range opts.Styles {
		p.styles[s] = struct{}{}
	}

	blank := image.NewNRGBA(image.Rect(0, 0, opts.TileSize, opts.TileSize))
	data, contentType, err := p.encode(blank, true)
	if err != nil {
		return nil, fmt.Errorf("encode transparent tile: %w", err)
	}
	p.transparent = Tile{ContentType: contentType, Data: data, Fallback: true}

	return p, nil
}

// Transparent returns the fallback tile.
func (p *Proxy) Transparent() Tile {
	return p.transparent
}

// ParsePath splits "{style}/{z}/{x}/{y}[.ext]" into a style and a coordinate.
func ParsePath(path string) (string, Coordinate, error) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 4 {
		return "", Coordinate{}, fmt.Errorf("%w: %q", ErrCoordinate, path)
	}

	y := parts[3]
	if i := strings.IndexByte(y, '.'); i >= 0 {
		y = y[:i]
	}

	z, err1 := strconv.Atoi(parts[1])
	x, err2 := strconv.Atoi(parts[2])
	yv, err3 := strconv.Atoi(y)
	if err1 != nil || err2 != nil || err3 != nil {
		return "", Coordinate{}, fmt.Errorf("%w: %q", ErrCoordinate, path)
	}
	c := Coordinate{Z: z, X: x, Y: yv}

	return parts[0], c, nil
}

// Fetch returns a tile for a style. Provider failures yield the transparent tile;
// only an unknown style or an impossible coordinate is an error.
func (p *Proxy) Fetch(ctx context.Context, style string, c Coordinate) (Tile, error) {
	if _, ok := p.styles[style]; !ok {
		return Tile{}, fmt.Errorf("%w: %q", ErrUnknownStyle, style)
	}
	if !c.Valid(p.source.MaxZoom) {
		return Tile{}, fmt.Errorf("%w: %d/%d/%d", ErrCoordinate, c.Z, c.X, c.Y)
	}

	tile, err := p.download(ctx, style, c)
	if err != nil {
		log.Debug().
			Err(err).
			Str("style", style).
			Int("z", c.Z).
			Int("x", c.X).
			Int("y", c.Y).
			Msg("Tile unavailable, serving transparent tile")
		return p.transparent, nil
	}

	return tile, nil
}

func (p *Proxy) download(ctx context.Context, style string, c Coordinate) (Tile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.source.UpstreamURL(style, c.Z, c.X, c.Y), nil)
	if err != nil {
		return Tile{}, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return Tile{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return Tile{}, fmt.Errorf("status code %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Tile{}, err
	}

	img, format, err := image.Decode(bytes.NewReader(body))
	if err != nil {
		return Tile{}, fmt.Errorf("decode failed: %w", err)
	}

	// Filter out empty/1px tiles often returned by map servers for OOB areas
	if img.Bounds().Dx() <= 1 {
		return Tile{}, errors.New("empty tile")
	}

	oversize := img.Bounds().Dx() > p.tileSize || img.Bounds().Dy() > p.tileSize
	if !p.webp && !oversize {
		return Tile{ContentType: "image/" + format, Data: body}, nil
	}

	if oversize {
		img = p.scale(img)
	}

	data, contentType, err := p.encode(img, false)
	if err != nil {
		return Tile{}, err
	}

	return Tile{ContentType: contentType, Data: data}, nil
}

// scale shrinks retina tiles down to the configured tile size.
func (p *Proxy) scale(src image.Image) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, p.tileSize, p.tileSize))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	return dst
}

func (p *Proxy) encode(img image.Image, lossless bool) ([]byte, string, error) {
	var buf bytes.Buffer

	if p.webp {
		if err := webp.Encode(&buf, img, &webp.Options{Lossless: lossless, Quality: 80}); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "image/webp", nil
	}

	if err := png.Encode(&buf, img); err != nil {
		return nil, "", err
	}

	return buf.Bytes(), "image/png", nil
}
