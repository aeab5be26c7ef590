package nasa

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/cosmoview-hq/cosmoview-gateway/internal/domain"
	"github.com/cosmoview-hq/cosmoview-gateway/pkg/sources"
)

const epicSource = "epic"

// EpicKind selects the EPIC image collection.
type EpicKind string

const (
	EpicNatural  EpicKind = "natural"
	EpicEnhanced EpicKind = "enhanced"
)

// EpicClient is the one stateful adapter: the upstream requires a preliminary
// "available dates" call per image kind before per-date fetches are
// meaningful. Switching kinds re-runs that call and resets the selected date
// to the newest available one. Invocations carry a sequence number so a slow
// response from an older kind switch can never overwrite the state of a
// newer one.
type EpicClient struct {
	c *Client

	mu       sync.Mutex
	seq      uint64
	kind     EpicKind
	dates    []string
	selected string
}

type epicFrameRecord struct {
	Identifier string `json:"identifier"`
	Caption    string `json:"caption"`
	Image      string `json:"image"`
	Version    string `json:"version"`
	Centroid   struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"centroid_coordinates"`
	Date string `json:"date"`
}

// NewEpicClient builds an EPIC adapter starting on the natural collection.
// Call SetKind (or Refresh) before fetching frames to load available dates.
func NewEpicClient(c *Client) *EpicClient {
	return &EpicClient{c: c, kind: EpicNatural}
}

// SetKind switches the image collection and reloads the available dates for
// it. If a newer SetKind/Refresh started while this one was in flight, the
// completed result is discarded and the newer invocation stays authoritative.
func (e *EpicClient) SetKind(ctx context.Context, kind EpicKind) error {
	if kind != EpicNatural && kind != EpicEnhanced {
		return invalidParams(epicSource, "image kind %q must be natural or enhanced", kind)
	}

	e.mu.Lock()
	e.seq++
	mySeq := e.seq
	e.kind = kind
	e.mu.Unlock()

	dates, err := e.fetchAvailableDates(ctx, kind)

	e.mu.Lock()
	defer e.mu.Unlock()
	if mySeq != e.seq {
		// A newer invocation started after this one; drop the result.
		return nil
	}
	if err != nil {
		return err
	}

	e.dates = dates
	e.selected = ""
	if len(dates) > 0 {
		e.selected = dates[0]
	}
	return nil
}

// Refresh reloads the available dates for the current kind.
func (e *EpicClient) Refresh(ctx context.Context) error {
	e.mu.Lock()
	kind := e.kind
	e.mu.Unlock()
	return e.SetKind(ctx, kind)
}

func (e *EpicClient) fetchAvailableDates(ctx context.Context, kind EpicKind) ([]string, error) {
	base, err := e.c.endpoint(sources.KindEpic, epicSource)
	if err != nil {
		return nil, err
	}

	reqURL := e.c.buildURL(sources.KindEpic, fmt.Sprintf("%s/%s/all", base, kind), nil)

	var dates []string
	if err := e.c.getJSON(ctx, epicSource, reqURL, &dates); err != nil {
		return nil, err
	}
	return dates, nil
}

// Kind returns the currently selected image collection.
func (e *EpicClient) Kind() EpicKind {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.kind
}

// AvailableDates returns a copy of the dates loaded for the current kind,
// newest first as served by the upstream.
func (e *EpicClient) AvailableDates() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.dates...)
}

// SelectedDate returns the date the next FetchFrames call defaults to.
func (e *EpicClient) SelectedDate() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selected
}

// SelectDate picks one of the loaded available dates for subsequent fetches.
func (e *EpicClient) SelectDate(date string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, d := range e.dates {
		if d == date {
			e.selected = date
			return nil
		}
	}
	return invalidParams(epicSource, "date %q is not among the available dates for the %s collection", date, e.kind)
}

// FetchFrames returns the EPIC frames captured on the given date (or the
// selected date when empty) for the current image collection.
func (e *EpicClient) FetchFrames(ctx context.Context, date string) ([]domain.EpicFrame, error) {
	e.mu.Lock()
	kind := e.kind
	if date == "" {
		date = e.selected
	}
	e.mu.Unlock()

	if date == "" {
		return nil, invalidParams(epicSource, "no date selected; load available dates first")
	}
	if _, ok := parseISODate(date); !ok {
		return nil, invalidParams(epicSource, "date %q is not a valid YYYY-MM-DD date", date)
	}

	base, err := e.c.endpoint(sources.KindEpic, epicSource)
	if err != nil {
		return nil, err
	}
	reqURL := e.c.buildURL(sources.KindEpic, fmt.Sprintf("%s/%s/date/%s", base, kind, date), nil)

	var records []epicFrameRecord
	if err := e.c.getJSON(ctx, epicSource, reqURL, &records); err != nil {
		return nil, err
	}

	frames := make([]domain.EpicFrame, 0, len(records))
	for _, rec := range records {
		if rec.Image == "" {
			return nil, malformedEnvelope(epicSource, "frame %s has no image name", rec.Identifier)
		}
		frames = append(frames, domain.EpicFrame{
			Identifier:  rec.Image,
			Caption:     rec.Caption,
			Version:     rec.Version,
			Date:        rec.Date,
			CentroidLat: rec.Centroid.Lat,
			CentroidLon: rec.Centroid.Lon,
		})
	}
	return frames, nil
}

// FrameURL synthesizes the archive PNG location for a frame from the frame's
// own date components and identifier. No network call is involved.
func (e *EpicClient) FrameURL(frame domain.EpicFrame) (string, error) {
	e.mu.Lock()
	kind := e.kind
	e.mu.Unlock()

	datePart := frame.Date
	if i := strings.IndexByte(datePart, ' '); i >= 0 {
		datePart = datePart[:i]
	}
	parts := strings.SplitN(datePart, "-", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", malformedEnvelope(epicSource, "frame date %q is not YYYY-MM-DD", frame.Date)
	}
	if frame.Identifier == "" {
		return "", malformedEnvelope(epicSource, "frame has no identifier")
	}

	archive, err := e.c.reg.Endpoint(sources.KindEpicArchive)
	if err != nil {
		return "", fmt.Errorf("%s: %w", epicSource, err)
	}

	return fmt.Sprintf("%s/%s/%s/%s/%s/png/%s.png",
		archive, kind, parts[0], parts[1], parts[2], frame.Identifier), nil
}
