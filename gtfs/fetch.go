package gtfs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/theoremus-urban-solutions/itinerary-filter/config"
	"github.com/theoremus-urban-solutions/itinerary-filter/utils"
)

// ErrNoLocation is returned by Load when the config names no feed location.
var ErrNoLocation = errors.New("gtfs: no path, staticURL or minio object configured")

// Load fetches and parses the feed described by cfg. A local path wins over
// a URL, which wins over a MinIO object.
func Load(ctx context.Context, cfg config.GTFSConfig) (*Feed, error) {
	opts, err := OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	switch {
	case cfg.Path != "":
		return NewFeedFromFile(cfg.Path, opts)
	case cfg.StaticURL != "":
		data, err := FetchHTTP(ctx, http.DefaultClient, cfg.StaticURL)
		if err != nil {
			return nil, err
		}
		return NewFeedFromBytes(data, opts)
	case cfg.MinIO.Endpoint != "":
		data, err := FetchMinIO(ctx, cfg.MinIO)
		if err != nil {
			return nil, err
		}
		return NewFeedFromBytes(data, opts)
	}
	return nil, ErrNoLocation
}

// OptionsFromConfig resolves timezone and service date. Without a service
// date the current day in that timezone is used.
func OptionsFromConfig(cfg config.GTFSConfig) (Options, error) {
	var opts Options
	loc := time.UTC
	if cfg.Timezone != "" {
		l, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			return opts, fmt.Errorf("gtfs timezone %q: %w", cfg.Timezone, err)
		}
		loc = l
		opts.Location = l
	}
	if cfg.ServiceDate == "" {
		opts.ServiceDate = time.Now().In(loc)
		return opts, nil
	}
	d, err := utils.ParseServiceDate(cfg.ServiceDate, loc)
	if err != nil {
		return opts, err
	}
	opts.ServiceDate = d
	return opts, nil
}

// FetchHTTP downloads a GTFS zip.
func FetchHTTP(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}

// FetchMinIO downloads a GTFS zip from an S3 compatible object store.
func FetchMinIO(ctx context.Context, cfg config.MinIOConfig) ([]byte, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client %s: %w", cfg.Endpoint, err)
	}
	obj, err := client.GetObject(ctx, cfg.Bucket, cfg.Object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", cfg.Bucket, cfg.Object, err)
	}
	defer func() { _ = obj.Close() }()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("read %s/%s: %w", cfg.Bucket, cfg.Object, err)
	}
	return data, nil
}
