package app

import (
	"context"
	"fmt"

	"github.com/cosmoview-hq/cosmoview-gateway/internal/config"
	"github.com/cosmoview-hq/cosmoview-gateway/internal/domain"
	"github.com/cosmoview-hq/cosmoview-gateway/internal/logger"
	"github.com/cosmoview-hq/cosmoview-gateway/pkg/httpclient"
	"github.com/cosmoview-hq/cosmoview-gateway/pkg/nasa"
	"github.com/cosmoview-hq/cosmoview-gateway/pkg/sources"
)

// Explorer is the gateway runtime: it wires config, the source registry, the
// shared HTTP transport, and the per-source adapters behind one façade the
// CLI calls into.
type Explorer struct {
	cfg    *config.Config
	client *nasa.Client
	epic   *nasa.EpicClient
}

// NewExplorer builds the runtime from loaded config.
func NewExplorer(cfg *config.Config) (*Explorer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}

	reg, err := sources.LoadRegistry(cfg.SourcesFile)
	if err != nil {
		return nil, fmt.Errorf("load sources registry: %w", err)
	}
	logger.InfoObj("sources registry loaded", "sources_meta", map[string]any{
		"count":     len(reg.All()),
		"overrides": cfg.SourcesFile,
	})

	httpc := httpclient.NewRestyClient(cfg.HTTPTimeout)
	client := nasa.NewClient(httpc, reg, cfg.NASAAPIKey)

	return &Explorer{
		cfg:    cfg,
		client: client,
		epic:   nasa.NewEpicClient(client),
	}, nil
}

// DailyImages fetches APOD entries for a single date or a range.
func (e *Explorer) DailyImages(ctx context.Context, q nasa.APODQuery) ([]domain.DailyImage, error) {
	entries, err := e.client.FetchAPOD(ctx, q)
	e.logOutcome("apod", len(entries), err)
	return entries, err
}

// NeoFeed fetches the near-earth object feed for a date window.
func (e *Explorer) NeoFeed(ctx context.Context, start, end string) (domain.NeoFeed, error) {
	feed, err := e.client.FetchNeoFeed(ctx, start, end)
	e.logOutcome("neo_feed", len(feed.Dates), err)
	return feed, err
}

// NeoDetail fetches one near-earth object by id.
func (e *Explorer) NeoDetail(ctx context.Context, id string) (domain.NearEarthObject, error) {
	obj, err := e.client.FetchNeoDetail(ctx, id)
	count := 0
	if err == nil {
		count = 1
	}
	e.logOutcome("neo_detail", count, err)
	return obj, err
}

// RoverPhotos fetches Mars rover photos for a sol, optionally by camera.
func (e *Explorer) RoverPhotos(ctx context.Context, rover string, sol int, camera string) ([]domain.RoverPhoto, error) {
	photos, err := e.client.FetchRoverPhotos(ctx, rover, sol, camera)
	e.logOutcome("rover_photos", len(photos), err)
	return photos, err
}

// EarthImagery fetches the Landsat tile plus asset metadata for a location.
func (e *Explorer) EarthImagery(ctx context.Context, lat, lon float64, date string) (domain.EarthImage, error) {
	img, err := e.client.FetchEarthImagery(ctx, lat, lon, date)
	count := 0
	if len(img.Image) > 0 || img.AssetID != "" {
		count = 1
	}
	e.logOutcome("earth_imagery", count, err)
	return img, err
}

// Epic exposes the stateful EPIC adapter.
func (e *Explorer) Epic() *nasa.EpicClient { return e.epic }

// MediaSearch queries the image and video library.
func (e *Explorer) MediaSearch(ctx context.Context, term string, kind domain.MediaKind) ([]domain.MediaItem, error) {
	items, err := e.client.SearchMedia(ctx, term, kind)
	e.logOutcome("media_search", len(items), err)
	return items, err
}

// ResolveMedia fills in the playable URL for one media item.
func (e *Explorer) ResolveMedia(ctx context.Context, item domain.MediaItem) (domain.MediaItem, error) {
	resolved, err := e.client.ResolveMediaURL(ctx, item)
	count := 0
	if resolved.ResolvedMediaURL != "" {
		count = 1
	}
	e.logOutcome("media_asset", count, err)
	return resolved, err
}

// TechTransfer searches one technology-transfer collection.
func (e *Explorer) TechTransfer(ctx context.Context, collection nasa.TechCollection, term string) ([]domain.TechTransferResult, error) {
	results, err := e.client.SearchTechTransfer(ctx, collection, term)
	e.logOutcome("tech_transfer", len(results), err)
	return results, err
}

func (e *Explorer) logOutcome(source string, count int, err error) {
	if err != nil {
		logger.ErrorObj("source fetch failed", "source_error", map[string]any{
			"source": source,
			"kind":   string(nasa.KindOf(err)),
			"error":  err.Error(),
		})
		return
	}
	logger.InfoObj("source fetch completed", "source_result", map[string]any{
		"source":  source,
		"results": count,
	})
}
