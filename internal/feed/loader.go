// Package feed loads the earthquake feed.
package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/woozymasta/quakemap/internal/geo"
	"github.com/woozymasta/quakemap/internal/quake"

	"github.com/rs/zerolog/log"
)

var (
	// ErrStatus is returned when the feed answers with a non-200 status.
	ErrStatus = errors.New("unexpected feed status")
	// ErrDecode is returned when the body is not a GeoJSON feature collection.
	ErrDecode = errors.New("malformed feed payload")
)

// Result is the outcome of a single load: either features or the reason there are none.
type Result struct {
	Err      error
	Features []quake.Feature
	Skipped  int
}

// Batch is a decoded feed. Skipped counts features without usable coordinates.
type Batch struct {
	Features []quake.Feature
	Skipped  int
}

// Ok reports whether the load succeeded.
func (r Result) Ok() bool {
	return r.Err == nil
}

// Loader fetches the feed with one GET per call.
type Loader struct {
	client *http.Client
	url    string
}

// New creates a loader. A nil client falls back to a client with a 15 second timeout.
func New(client *http.Client, url string) *Loader {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	return &Loader{client: client, url: url}
}

// Load performs the request. It never retries; failures are reported in the Result.
func (l *Loader) Load(ctx context.Context) Result {
	start := time.Now()

	batch, err := l.fetch(ctx)
	if err != nil {
		log.Error().
			Err(err).
			Str("url", l.url).
			Dur("duration", time.Since(start)).
			Msg("Failed to load earthquake feed")
		return Result{Err: err}
	}

	log.Debug().
		Str("url", l.url).
		Int("features", len(batch.Features)).
		Int("skipped", batch.Skipped).
		Dur("duration", time.Since(start)).
		Msg("Earthquake feed loaded")

	return Result{Features: batch.Features, Skipped: batch.Skipped}
}

func (l *Loader) fetch(ctx context.Context) (Batch, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return Batch{}, err
	}
	req.Header.Set("Accept", "application/geo+json, application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return Batch{}, fmt.Errorf("GET %s: %w", l.url, err)
	}
	// Explicitly ignore close error as it's a read-only operation
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return Batch{}, fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}

	return Decode(resp.Body)
}

// Decode reads a GeoJSON feature collection and converts every feature.
// Features without coordinates are skipped; the rest keep the order of the feed.
func Decode(r io.Reader) (Batch, error) {
	var fc geo.FeatureCollection
	if err := json.NewDecoder(r).Decode(&fc); err != nil {
		return Batch{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if fc.Type != "" && fc.Type != "FeatureCollection" {
		return Batch{}, fmt.Errorf("%w: type %q", ErrDecode, fc.Type)
	}

	batch := Batch{Features: make([]quake.Feature, 0, len(fc.Features))}
	for i, f := range fc.Features {
		q, err := quake.FromGeoJSON(f)
		if err != nil {
			log.Warn().
				Err(err).
				Str("id", f.ID).
				Int("index", i).
				Msg("Skipping feed feature")
			batch.Skipped++
			continue
		}
		batch.Features = append(batch.Features, q)
	}

	if fc.Metadata != nil && fc.Metadata.Count != len(fc.Features) {
		log.Warn().
			Int("metadata_count", fc.Metadata.Count).
			Int("features", len(fc.Features)).
			Msg("Feed metadata count does not match its features")
	}

	return batch, nil
}
