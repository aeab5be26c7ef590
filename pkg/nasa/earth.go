package nasa

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/cosmoview-hq/cosmoview-gateway/internal/domain"
	"github.com/cosmoview-hq/cosmoview-gateway/pkg/sources"
)

const (
	earthSource = "earth_imagery"

	// Width/height of the imagery tile in degrees, fixed upstream default.
	earthImageDim = "0.15"

	earthHalfImagery = "imagery"
	earthHalfAssets  = "assets"
)

type earthAssetRecord struct {
	ID   string `json:"id"`
	Date string `json:"date"`
}

// FetchEarthImagery fetches the Landsat tile covering (lat, lon) on the given
// date together with its asset metadata. The two upstream calls run
// concurrently and both are awaited; when exactly one fails the surviving
// half is returned alongside a partial-failure error naming it.
func (c *Client) FetchEarthImagery(ctx context.Context, lat, lon float64, date string) (domain.EarthImage, error) {
	var result domain.EarthImage

	if lat < -90 || lat > 90 {
		return result, invalidParams(earthSource, "latitude %v is outside [-90, 90]", lat)
	}
	if lon < -180 || lon > 180 {
		return result, invalidParams(earthSource, "longitude %v is outside [-180, 180]", lon)
	}
	if _, ok := parseISODate(date); !ok {
		return result, invalidParams(earthSource, "date %q is not a valid YYYY-MM-DD date", date)
	}

	imageryBase, err := c.endpoint(sources.KindEarthImagery, earthSource)
	if err != nil {
		return result, err
	}
	assetsBase, err := c.endpoint(sources.KindEarthAssets, earthSource)
	if err != nil {
		return result, err
	}

	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("date", date)
	params.Set("dim", earthImageDim)

	imageryURL := c.buildURL(sources.KindEarthImagery, imageryBase, cloneValues(params))
	assetsURL := c.buildURL(sources.KindEarthAssets, assetsBase, cloneValues(params))

	var (
		wg         sync.WaitGroup
		image      []byte
		imageryErr error
		asset      earthAssetRecord
		assetsErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		image, imageryErr = c.fetchEarthImage(ctx, imageryURL)
	}()
	go func() {
		defer wg.Done()
		assetsErr = c.getJSON(ctx, earthSource, assetsURL, &asset)
	}()
	wg.Wait()

	switch {
	case imageryErr == nil && assetsErr == nil:
		return domain.EarthImage{Image: image, AssetDate: asset.Date, AssetID: asset.ID}, nil
	case imageryErr != nil && assetsErr != nil:
		return result, fmt.Errorf("%s: both imagery and asset calls failed: %w", earthSource, imageryErr)
	case imageryErr == nil:
		result.Image = image
		return result, partialFailure(earthHalfImagery, assetsErr)
	default:
		result.AssetDate = asset.Date
		result.AssetID = asset.ID
		return result, partialFailure(earthHalfAssets, imageryErr)
	}
}

// fetchEarthImage retrieves the raw imagery bytes without decoding them.
// Error responses from this endpoint come back as JSON even though the
// success payload is binary.
func (c *Client) fetchEarthImage(ctx context.Context, reqURL string) ([]byte, error) {
	resp, err := c.httpc.Get(ctx, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: fetch imagery: %w", earthSource, err)
	}

	body := resp.Body()
	if status := resp.StatusCode(); status < 200 || status > 299 {
		if msg := embeddedError(body); msg != "" {
			return nil, transportError(earthSource, status, []byte(msg))
		}
		return nil, transportError(earthSource, status, body)
	}
	if len(body) == 0 {
		return nil, malformedEnvelope(earthSource, "imagery response body is empty")
	}
	// The imagery endpoint reports some failures as JSON with a 2xx status.
	if strings.Contains(resp.Header("Content-Type"), "application/json") {
		if msg := embeddedError(body); msg != "" {
			return nil, upstreamError(earthSource, msg)
		}
	}
	return body, nil
}

func partialFailure(succeededHalf string, cause error) *Error {
	e := newError(KindPartialFailure, earthSource, cause.Error())
	e.Succeeded = succeededHalf
	return e
}

func cloneValues(in url.Values) url.Values {
	out := make(url.Values, len(in))
	for k, vs := range in {
		out[k] = append([]string(nil), vs...)
	}
	return out
}
