package domain

// Domain contains the normalized value shapes produced by the source
// adapters. Entities are constructed per call and never mutated afterwards.

// MediaKind classifies the media behind a normalized entry.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
	MediaAudio MediaKind = "audio"
)

// DailyImage is one astronomy-picture-of-the-day entry.
type DailyImage struct {
	Date        string
	Title       string
	Explanation string
	MediaKind   MediaKind
	MediaURL    string
	HighResURL  string
	Attribution string
}

// CloseApproach is one recorded close pass of a near-earth object.
type CloseApproach struct {
	Date                string
	MissDistanceKm      string
	RelativeVelocityKmH string
}

// NearEarthObject is one asteroid record, unique by ID within a feed day.
type NearEarthObject struct {
	ID                     string
	Name                   string
	AbsoluteMagnitude      float64
	EstimatedDiameterKmMin float64
	EstimatedDiameterKmMax float64
	Hazardous              bool
	CloseApproaches        []CloseApproach
}

// NeoFeed maps each ISO date inside the requested window to the objects
// approaching on that date, preserving upstream order per day.
type NeoFeed struct {
	Dates   []string
	Objects map[string][]NearEarthObject
}

// RoverPhoto is one Mars rover photo with its camera context.
type RoverPhoto struct {
	ID             int64
	ImageURL       string
	EarthDate      string
	RoverName      string
	CameraFullName string
}

// EarthImage merges the binary imagery call with the asset metadata call.
// Image stays opaque raw bytes; either half may be absent on partial failure.
type EarthImage struct {
	Image     []byte
	AssetDate string
	AssetID   string
}

// EpicFrame is one EPIC camera frame. The viewable URL is derived from the
// frame's own date and identifier, never stored verbatim.
type EpicFrame struct {
	Identifier  string
	Caption     string
	Version     string
	Date        string
	CentroidLat float64
	CentroidLon float64
}

// MediaItem is one media-library search hit. ResolvedMediaURL stays empty for
// video/audio until the caller explicitly resolves the item.
type MediaItem struct {
	ID               string
	Title            string
	Description      string
	MediaKind        MediaKind
	DateCreated      string
	Center           string
	Photographer     string
	Keywords         []string
	ThumbnailURL     string
	ResolvedMediaURL string
}

// TechTransferResult is one technology-transfer record. Title arrives with
// wrapping markup stripped; DescriptionHTML keeps the upstream fragment.
type TechTransferResult struct {
	ID              string
	Code            string
	Title           string
	DescriptionHTML string
	Center          string
	Category        string
	ImageURL        string
}
