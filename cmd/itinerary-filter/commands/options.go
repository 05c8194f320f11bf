// Package commands implements the itinerary-filter subcommands.
package commands

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/theoremus-urban-solutions/itinerary-filter/config"
	"github.com/theoremus-urban-solutions/itinerary-filter/flight"
	"github.com/theoremus-urban-solutions/itinerary-filter/gtfs"
	"github.com/theoremus-urban-solutions/itinerary-filter/gtfsrt"
	"github.com/theoremus-urban-solutions/itinerary-filter/sample"
	"github.com/theoremus-urban-solutions/itinerary-filter/utils"
)

// Options are shared by all subcommands and filled from persistent flags.
type Options struct {
	ConfigPath string
	Feed       string
	Format     string
	Verbose    bool

	// Now is the reference time; zero means time.Now.
	Now time.Time
}

func (o *Options) now() time.Time {
	if o.Now.IsZero() {
		return time.Now()
	}
	return o.Now
}

// loadConfig reads the config file (or defaults) and applies flag overrides.
func (o *Options) loadConfig() (config.AppConfig, error) {
	if o.ConfigPath == "" {
		if err := config.LoadAppConfig(); err != nil {
			return config.AppConfig{}, err
		}
	} else {
		env, err := config.Environment(".env")
		if err != nil {
			return config.AppConfig{}, err
		}
		if config.Config, err = config.Load(o.ConfigPath, env); err != nil {
			return config.AppConfig{}, err
		}
	}
	cfg := config.Config
	if o.Format != "" {
		cfg.Output.Format = o.Format
	}
	return cfg, nil
}

// source is a loaded collection of itineraries with optional labels.
type source struct {
	items []flight.Itinerary
	ids   []string
}

func loadSource(ctx context.Context, src config.SourceConfig, now time.Time) (source, error) {
	switch src.Kind {
	case config.SourceSample, "":
		items := sample.Itineraries(now)
		ids := make([]string, len(items))
		for i := range items {
			ids[i] = fmt.Sprintf("sample-%d", i+1)
		}
		return source{items: items, ids: ids}, nil
	case config.SourceGTFS:
		feed, err := gtfs.Load(ctx, src.GTFS)
		if err != nil {
			return source{}, err
		}
		return source{items: feed.Itineraries(), ids: feed.TripIDs()}, nil
	case config.SourceGTFSRT:
		feed, err := gtfsrt.Load(ctx, src.GTFSRT)
		if err != nil {
			return source{}, err
		}
		log.Printf("gtfsrt: %d trips in feed generated at %s", len(feed.Trips), utils.Iso8601FromUnixSeconds(feed.HeaderTimestamp))
		return source{items: feed.Itineraries(), ids: feed.TripIDs()}, nil
	}
	return source{}, fmt.Errorf("unknown source kind %q", src.Kind)
}
