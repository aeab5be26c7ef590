package nasa

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/cosmoview-hq/cosmoview-gateway/internal/domain"
	"github.com/cosmoview-hq/cosmoview-gateway/pkg/sources"
)

const apodSource = "apod"

// APODQuery selects either a single date or an inclusive date range. When
// both ends of the range are non-empty the range wins over Date, matching
// the mutual-exclusivity contract of the input layer.
type APODQuery struct {
	Date      string
	StartDate string
	EndDate   string
}

type apodRecord struct {
	Copyright   string `json:"copyright"`
	Date        string `json:"date"`
	Explanation string `json:"explanation"`
	HDURL       string `json:"hdurl"`
	MediaType   string `json:"media_type"`
	Title       string `json:"title"`
	URL         string `json:"url"`
}

// FetchAPOD returns the astronomy picture of the day for a single date, or an
// ordered sequence of entries for a date range. With an empty query the
// upstream serves today's entry.
func (c *Client) FetchAPOD(ctx context.Context, q APODQuery) ([]domain.DailyImage, error) {
	base, err := c.endpoint(sources.KindAPOD, apodSource)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	switch {
	case q.StartDate != "" && q.EndDate != "":
		if _, _, err := validateDateRange(apodSource, q.StartDate, q.EndDate); err != nil {
			return nil, err
		}
		params.Set("start_date", q.StartDate)
		params.Set("end_date", q.EndDate)
	case q.Date != "":
		if _, ok := parseISODate(q.Date); !ok {
			return nil, invalidParams(apodSource, "date %q is not a valid YYYY-MM-DD date", q.Date)
		}
		params.Set("date", q.Date)
	}

	reqURL := c.buildURL(sources.KindAPOD, base, params)

	// The upstream returns a single object for date queries and an array
	// for range queries.
	var raw json.RawMessage
	if err := c.getJSON(ctx, apodSource, reqURL, &raw); err != nil {
		return nil, err
	}

	var records []apodRecord
	if bytes.HasPrefix(bytes.TrimSpace(raw), []byte("[")) {
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, malformedEnvelope(apodSource, "decode entry list: %v", err)
		}
	} else {
		var rec apodRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, malformedEnvelope(apodSource, "decode entry: %v", err)
		}
		records = []apodRecord{rec}
	}

	out := make([]domain.DailyImage, 0, len(records))
	for _, rec := range records {
		entry, err := normalizeAPOD(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, nil
}

func normalizeAPOD(rec apodRecord) (domain.DailyImage, error) {
	mediaURL := strings.TrimSpace(rec.URL)
	if !isAbsoluteURL(mediaURL) {
		return domain.DailyImage{}, malformedEnvelope(apodSource, "entry %s has no absolute media url (%q)", rec.Date, rec.URL)
	}

	kind := domain.MediaImage
	if rec.MediaType == string(domain.MediaVideo) {
		kind = domain.MediaVideo
	}

	return domain.DailyImage{
		Date:        rec.Date,
		Title:       rec.Title,
		Explanation: rec.Explanation,
		MediaKind:   kind,
		MediaURL:    mediaURL,
		HighResURL:  strings.TrimSpace(rec.HDURL),
		Attribution: strings.TrimSpace(rec.Copyright),
	}, nil
}

func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}
