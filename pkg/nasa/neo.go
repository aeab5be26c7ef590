package nasa

import (
	"context"
	"encoding/json"
	"net/url"
	"sort"

	"github.com/cosmoview-hq/cosmoview-gateway/internal/domain"
	"github.com/cosmoview-hq/cosmoview-gateway/pkg/sources"
)

const (
	neoFeedSource   = "neo_feed"
	neoDetailSource = "neo_detail"

	// The feed endpoint rejects windows wider than seven days.
	maxNeoFeedSpanDays = 7
)

type neoRecord struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	AbsoluteMagnitude float64 `json:"absolute_magnitude_h"`
	EstimatedDiameter struct {
		Kilometers struct {
			Min float64 `json:"estimated_diameter_min"`
			Max float64 `json:"estimated_diameter_max"`
		} `json:"kilometers"`
	} `json:"estimated_diameter"`
	Hazardous    bool `json:"is_potentially_hazardous_asteroid"`
	CloseApproach []struct {
		Date         string `json:"close_approach_date"`
		MissDistance struct {
			Kilometers string `json:"kilometers"`
		} `json:"miss_distance"`
		RelativeVelocity struct {
			KilometersPerHour string `json:"kilometers_per_hour"`
		} `json:"relative_velocity"`
	} `json:"close_approach_data"`
}

// FetchNeoFeed returns the near-earth objects approaching within the
// inclusive [start, end] window, bucketed by approach date. Both dates are
// required and the window must not exceed seven days.
func (c *Client) FetchNeoFeed(ctx context.Context, start, end string) (domain.NeoFeed, error) {
	var feed domain.NeoFeed

	if start == "" || end == "" {
		return feed, invalidParams(neoFeedSource, "both start and end dates are required")
	}
	from, to, err := validateDateRange(neoFeedSource, start, end)
	if err != nil {
		return feed, err
	}
	if days := int(to.Sub(from).Hours() / 24); days > maxNeoFeedSpanDays {
		return feed, invalidRange(neoFeedSource, "window of %d days exceeds the %d day limit", days, maxNeoFeedSpanDays)
	}

	base, err := c.endpoint(sources.KindNeoFeed, neoFeedSource)
	if err != nil {
		return feed, err
	}

	params := url.Values{}
	params.Set("start_date", start)
	params.Set("end_date", end)
	reqURL := c.buildURL(sources.KindNeoFeed, base, params)

	var envelope map[string]json.RawMessage
	if err := c.getJSON(ctx, neoFeedSource, reqURL, &envelope); err != nil {
		return feed, err
	}

	rawObjects, ok := envelope["near_earth_objects"]
	if !ok {
		return feed, malformedEnvelope(neoFeedSource, "response is missing the near_earth_objects container")
	}

	var byDate map[string][]neoRecord
	if err := json.Unmarshal(rawObjects, &byDate); err != nil {
		return feed, malformedEnvelope(neoFeedSource, "decode near_earth_objects: %v", err)
	}

	feed.Objects = make(map[string][]domain.NearEarthObject, len(byDate))
	feed.Dates = make([]string, 0, len(byDate))
	for date, records := range byDate {
		objects := make([]domain.NearEarthObject, 0, len(records))
		for _, rec := range records {
			objects = append(objects, normalizeNeo(rec))
		}
		feed.Objects[date] = objects
		feed.Dates = append(feed.Dates, date)
	}
	sort.Strings(feed.Dates)

	return feed, nil
}

// FetchNeoDetail looks up one near-earth object by its upstream id, including
// its full close-approach history.
func (c *Client) FetchNeoDetail(ctx context.Context, id string) (domain.NearEarthObject, error) {
	if id == "" {
		return domain.NearEarthObject{}, invalidParams(neoDetailSource, "object id is required")
	}

	base, err := c.endpoint(sources.KindNeoDetail, neoDetailSource)
	if err != nil {
		return domain.NearEarthObject{}, err
	}

	reqURL := c.buildURL(sources.KindNeoDetail, base+"/"+url.PathEscape(id), nil)

	var rec neoRecord
	if err := c.getJSON(ctx, neoDetailSource, reqURL, &rec); err != nil {
		return domain.NearEarthObject{}, err
	}
	if rec.ID == "" {
		return domain.NearEarthObject{}, malformedEnvelope(neoDetailSource, "response has no object id")
	}

	return normalizeNeo(rec), nil
}

func normalizeNeo(rec neoRecord) domain.NearEarthObject {
	approaches := make([]domain.CloseApproach, 0, len(rec.CloseApproach))
	for _, ca := range rec.CloseApproach {
		approaches = append(approaches, domain.CloseApproach{
			Date:                ca.Date,
			MissDistanceKm:      ca.MissDistance.Kilometers,
			RelativeVelocityKmH: ca.RelativeVelocity.KilometersPerHour,
		})
	}

	return domain.NearEarthObject{
		ID:                     rec.ID,
		Name:                   rec.Name,
		AbsoluteMagnitude:      rec.AbsoluteMagnitude,
		EstimatedDiameterKmMin: rec.EstimatedDiameter.Kilometers.Min,
		EstimatedDiameterKmMax: rec.EstimatedDiameter.Kilometers.Max,
		Hazardous:              rec.Hazardous,
		CloseApproaches:        approaches,
	}
}
