package nasa

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"github.com/cosmoview-hq/cosmoview-gateway/internal/domain"
	"github.com/cosmoview-hq/cosmoview-gateway/pkg/sources"
)

const roverSource = "rover_photos"

type roverPhotoRecord struct {
	ID        int64  `json:"id"`
	ImgSrc    string `json:"img_src"`
	EarthDate string `json:"earth_date"`
	Rover     struct {
		Name string `json:"name"`
	} `json:"rover"`
	Camera struct {
		FullName string `json:"full_name"`
	} `json:"camera"`
}

// FetchRoverPhotos returns photos taken by the named rover on the given
// Martian sol, optionally filtered by camera. Zero matching photos is a
// valid empty result, not a failure.
func (c *Client) FetchRoverPhotos(ctx context.Context, rover string, sol int, camera string) ([]domain.RoverPhoto, error) {
	rover = strings.TrimSpace(rover)
	if rover == "" {
		return nil, invalidParams(roverSource, "rover name is required")
	}
	if sol < 0 {
		return nil, invalidParams(roverSource, "sol must not be negative")
	}

	base, err := c.endpoint(sources.KindRoverPhotos, roverSource)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("sol", strconv.Itoa(sol))
	if camera = strings.TrimSpace(camera); camera != "" {
		params.Set("camera", camera)
	}
	reqURL := c.buildURL(sources.KindRoverPhotos, base+"/"+url.PathEscape(rover)+"/photos", params)

	var envelope map[string]json.RawMessage
	if err := c.getJSON(ctx, roverSource, reqURL, &envelope); err != nil {
		return nil, err
	}

	rawPhotos, ok := envelope["photos"]
	if !ok {
		return nil, malformedEnvelope(roverSource, "response is missing the photos container")
	}

	var records []roverPhotoRecord
	if err := json.Unmarshal(rawPhotos, &records); err != nil {
		return nil, malformedEnvelope(roverSource, "decode photos: %v", err)
	}

	photos := make([]domain.RoverPhoto, 0, len(records))
	for _, rec := range records {
		photos = append(photos, domain.RoverPhoto{
			ID:             rec.ID,
			ImageURL:       rec.ImgSrc,
			EarthDate:      rec.EarthDate,
			RoverName:      rec.Rover.Name,
			CameraFullName: rec.Camera.FullName,
		})
	}
	return photos, nil
}
