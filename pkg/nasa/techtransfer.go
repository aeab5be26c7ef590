package nasa

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cosmoview-hq/cosmoview-gateway/internal/domain"
	"github.com/cosmoview-hq/cosmoview-gateway/pkg/sources"
)

const techSource = "tech_transfer"

// TechCollection selects which technology-transfer index to search.
type TechCollection string

const (
	TechPatent       TechCollection = "patent"
	TechPatentIssued TechCollection = "patent_issued"
	TechSoftware     TechCollection = "software"
	TechSpinoff      TechCollection = "spinoff"
)

// techFieldIndex is the upstream's positional record contract: each result
// row is a fixed-position array, decoded through this table. A future
// upstream reshuffle is a one-line edit here.
var techFieldIndex = struct {
	ID, Code, Title, Description, Category, Center, ImageURL int
}{
	ID:          0,
	Code:        1,
	Title:       2,
	Description: 3,
	Category:    5,
	Center:      9,
	ImageURL:    10,
}

type techEnvelope struct {
	Results *[][]json.RawMessage `json:"results"`
}

// SearchTechTransfer searches one technology-transfer collection for the
// given term. Titles arrive wrapped in highlight markup which is stripped;
// descriptions keep their HTML fragment for the rendering layer.
func (c *Client) SearchTechTransfer(ctx context.Context, collection TechCollection, term string) ([]domain.TechTransferResult, error) {
	switch collection {
	case TechPatent, TechPatentIssued, TechSoftware, TechSpinoff:
	default:
		return nil, invalidParams(techSource, "collection %q must be patent, patent_issued, software, or spinoff", collection)
	}
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, invalidParams(techSource, "search term is required")
	}

	base, err := c.endpoint(sources.KindTechTransfer, techSource)
	if err != nil {
		return nil, err
	}

	// This upstream takes the search term as a bare query token, not a
	// named parameter: /techtransfer/patent/?engine&api_key=...
	reqURL := base + "/" + string(collection) + "/?" + url.QueryEscape(term) + "&api_key=" + url.QueryEscape(c.apiKey)

	var envelope techEnvelope
	if err := c.getJSON(ctx, techSource, reqURL, &envelope); err != nil {
		return nil, err
	}
	if envelope.Results == nil {
		return nil, malformedEnvelope(techSource, "response is missing the results container")
	}

	results := make([]domain.TechTransferResult, 0, len(*envelope.Results))
	for i, row := range *envelope.Results {
		res, err := normalizeTechRecord(row)
		if err != nil {
			return nil, malformedEnvelope(techSource, "record %d: %v", i, err)
		}
		results = append(results, res)
	}
	return results, nil
}

func normalizeTechRecord(row []json.RawMessage) (domain.TechTransferResult, error) {
	title, err := stripMarkup(techField(row, techFieldIndex.Title))
	if err != nil {
		return domain.TechTransferResult{}, err
	}

	return domain.TechTransferResult{
		ID:              techField(row, techFieldIndex.ID),
		Code:            techField(row, techFieldIndex.Code),
		Title:           title,
		DescriptionHTML: techField(row, techFieldIndex.Description),
		Category:        techField(row, techFieldIndex.Category),
		Center:          techField(row, techFieldIndex.Center),
		ImageURL:        techField(row, techFieldIndex.ImageURL),
	}, nil
}

// techField reads the positional string field at idx, tolerating short rows
// and non-string cells (both occur across the four collections).
func techField(row []json.RawMessage, idx int) string {
	if idx >= len(row) {
		return ""
	}
	var s string
	if err := json.Unmarshal(row[idx], &s); err != nil {
		return ""
	}
	return s
}

// stripMarkup flattens an HTML fragment to its text content.
func stripMarkup(fragment string) (string, error) {
	if !strings.ContainsRune(fragment, '<') {
		return fragment, nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(doc.Text()), nil
}
