package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/woozymasta/quakemap/internal/feed"
	"github.com/woozymasta/quakemap/internal/quake"

	"github.com/jessevdk/go-flags"
	"gopkg.in/yaml.v3"
)

type Options struct {
	Input    string `short:"i" long:"in" description:"Input GeoJSON file or http(s) URL. Reads from stdin if empty"`
	Output   string `short:"o" long:"out" description:"Output file path. Writes to stdout if empty"`
	Format   string `short:"f" long:"format" description:"Output format" choice:"json" choice:"yaml" default:"json"`
	TimeZone string `short:"z" long:"time-zone" description:"Time zone for popup timestamps" default:"UTC"`
	Legend   bool   `short:"l" long:"legend" description:"Print the legend bands instead of markers"`
}

type legendRow struct {
	Label string      `json:"label" yaml:"label"`
	Color quake.Color `json:"color" yaml:"color"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	var out any
	if opts.Legend {
		rows := []legendRow{}
		for _, e := range quake.Legend() {
			rows = append(rows, legendRow{Label: e.Label(), Color: e.Color})
		}
		out = rows
	} else {
		loc, err := time.LoadLocation(opts.TimeZone)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid time zone: %v\n", err)
			os.Exit(1)
		}

		features, err := readFeatures(opts.Input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading feed: %v\n", err)
			os.Exit(1)
		}

		out = quake.BuildOverlay(features, quake.PopupOptions{Location: loc}).Markers()
	}

	// marshal
	var outputData []byte
	var err error
	if opts.Format == "yaml" {
		outputData, err = yaml.Marshal(out)
	} else {
		outputData, err = json.MarshalIndent(out, "", "  ")
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling data: %v\n", err)
		os.Exit(1)
	}

	if opts.Output != "" {
		err = os.WriteFile(opts.Output, outputData, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Successfully wrote %s (format: %s)\n", opts.Output, opts.Format)
	} else {
		fmt.Println(string(outputData))
	}
}

// readFeatures decodes a feed from a URL, a file or stdin.
func readFeatures(input string) ([]quake.Feature, error) {
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		res := feed.New(&http.Client{Timeout: 15 * time.Second}, input).Load(context.Background())
		return res.Features, res.Err
	}

	var r io.Reader = os.Stdin
	if input != "" {
		f, err := os.Open(input)
		if err != nil {
			return nil, err
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	batch, err := feed.Decode(r)
	if err != nil {
		return nil, err
	}
	if batch.Skipped > 0 {
		fmt.Fprintf(os.Stderr, "Skipped %d features without coordinates\n", batch.Skipped)
	}

	return batch.Features, nil
}
