package nasa

import (
	"context"
	"net/url"
	"strings"

	"github.com/cosmoview-hq/cosmoview-gateway/internal/domain"
	"github.com/cosmoview-hq/cosmoview-gateway/pkg/sources"
)

const mediaSource = "media_search"

type mediaSearchEnvelope struct {
	Collection *struct {
		Items []struct {
			Data []struct {
				NasaID       string   `json:"nasa_id"`
				Title        string   `json:"title"`
				Description  string   `json:"description"`
				MediaType    string   `json:"media_type"`
				DateCreated  string   `json:"date_created"`
				Center       string   `json:"center"`
				Photographer string   `json:"photographer"`
				Keywords     []string `json:"keywords"`
			} `json:"data"`
			Links []struct {
				Href string `json:"href"`
			} `json:"links"`
		} `json:"items"`
	} `json:"collection"`
}

type mediaAssetEnvelope struct {
	Collection *struct {
		Items []struct {
			Href string `json:"href"`
		} `json:"items"`
	} `json:"collection"`
}

// SearchMedia queries the image and video library for the given term and
// media type. Video and audio hits come back with only a thumbnail; their
// playable URL is filled in lazily by ResolveMediaURL.
func (c *Client) SearchMedia(ctx context.Context, term string, kind domain.MediaKind) ([]domain.MediaItem, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, invalidParams(mediaSource, "search term is required")
	}
	switch kind {
	case domain.MediaImage, domain.MediaVideo, domain.MediaAudio:
	default:
		return nil, invalidParams(mediaSource, "media type %q must be image, video, or audio", kind)
	}

	base, err := c.endpoint(sources.KindMediaSearch, mediaSource)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("q", term)
	params.Set("media_type", string(kind))
	reqURL := c.buildURL(sources.KindMediaSearch, base, params)

	var envelope mediaSearchEnvelope
	if err := c.getJSON(ctx, mediaSource, reqURL, &envelope); err != nil {
		return nil, err
	}
	if envelope.Collection == nil {
		return nil, malformedEnvelope(mediaSource, "response is missing the collection container")
	}

	items := make([]domain.MediaItem, 0, len(envelope.Collection.Items))
	for _, item := range envelope.Collection.Items {
		if len(item.Data) == 0 {
			continue
		}
		data := item.Data[0]

		thumb := ""
		if len(item.Links) > 0 {
			thumb = item.Links[0].Href
		}

		items = append(items, domain.MediaItem{
			ID:           data.NasaID,
			Title:        data.Title,
			Description:  data.Description,
			MediaKind:    domain.MediaKind(data.MediaType),
			DateCreated:  data.DateCreated,
			Center:       data.Center,
			Photographer: data.Photographer,
			Keywords:     append([]string(nil), data.Keywords...),
			ThumbnailURL: thumb,
		})
	}
	return items, nil
}

// mediaExtensions maps a media kind to the asset file extensions that count
// as its playable form.
var mediaExtensions = map[domain.MediaKind][]string{
	domain.MediaVideo: {".mp4"},
	domain.MediaAudio: {".mp3", ".m4a"},
}

// ResolveMediaURL looks up the playable asset for a video or audio item and
// returns a copy with ResolvedMediaURL set. Image items resolve to their
// thumbnail without a network call. When no asset matches the item's declared
// kind the result is a resolution-unavailable error, never an empty URL.
func (c *Client) ResolveMediaURL(ctx context.Context, item domain.MediaItem) (domain.MediaItem, error) {
	if item.ID == "" {
		return item, invalidParams(mediaSource, "media item has no id")
	}

	if item.MediaKind == domain.MediaImage {
		if item.ThumbnailURL == "" {
			return item, newError(KindResolutionUnavailable, mediaSource, "image item "+item.ID+" has no link")
		}
		item.ResolvedMediaURL = item.ThumbnailURL
		return item, nil
	}

	wanted, ok := mediaExtensions[item.MediaKind]
	if !ok {
		return item, invalidParams(mediaSource, "media type %q cannot be resolved", item.MediaKind)
	}

	base, err := c.endpoint(sources.KindMediaAsset, mediaSource)
	if err != nil {
		return item, err
	}
	reqURL := c.buildURL(sources.KindMediaAsset, base+"/"+url.PathEscape(item.ID), nil)

	var envelope mediaAssetEnvelope
	if err := c.getJSON(ctx, mediaSource, reqURL, &envelope); err != nil {
		return item, err
	}
	if envelope.Collection == nil {
		return item, malformedEnvelope(mediaSource, "asset response is missing the collection container")
	}

	for _, asset := range envelope.Collection.Items {
		if matchesExtension(asset.Href, wanted) {
			item.ResolvedMediaURL = asset.Href
			return item, nil
		}
	}
	return item, newError(KindResolutionUnavailable, mediaSource,
		"no "+string(item.MediaKind)+" asset found for item "+item.ID)
}

func matchesExtension(href string, exts []string) bool {
	u, err := url.Parse(href)
	if err != nil {
		return false
	}
	path := strings.ToLower(u.Path)
	for _, ext := range exts {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}
