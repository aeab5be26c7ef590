package nasa

import (
	"context"
	"testing"
)

const neoFeedBody = `{
  "element_count": 2,
  "near_earth_objects": {
    "2024-03-01": [
      {
        "id": "3542519",
        "name": "(2010 PK9)",
        "absolute_magnitude_h": 21.87,
        "estimated_diameter": {"kilometers": {"estimated_diameter_min": 0.11, "estimated_diameter_max": 0.25}},
        "is_potentially_hazardous_asteroid": true,
        "close_approach_data": [
          {
            "close_approach_date": "2024-03-01",
            "miss_distance": {"kilometers": "47112732.9"},
            "relative_velocity": {"kilometers_per_hour": "30548.5"}
          }
        ]
      }
    ],
    "2024-03-02": [
      {
        "id": "2153306",
        "name": "153306 (2001 JL1)",
        "absolute_magnitude_h": 17.6,
        "estimated_diameter": {"kilometers": {"estimated_diameter_min": 0.7, "estimated_diameter_max": 1.6}},
        "is_potentially_hazardous_asteroid": false,
        "close_approach_data": []
      }
    ]
  }
}`

func TestFetchNeoFeed(t *testing.T) {
	fake := newFakeClient(map[string]fakeResponse{
		"https://api.nasa.gov/neo/rest/v1/feed?api_key=demo&end_date=2024-03-02&start_date=2024-03-01": {body: neoFeedBody},
	})
	c := newTestClient(fake)

	feed, err := c.FetchNeoFeed(context.Background(), "2024-03-01", "2024-03-02")
	if err != nil {
		t.Fatalf("FetchNeoFeed returned error: %v", err)
	}
	if len(feed.Dates) != 2 {
		t.Fatalf("expected 2 feed dates, got %d", len(feed.Dates))
	}
	if feed.Dates[0] != "2024-03-01" || feed.Dates[1] != "2024-03-02" {
		t.Errorf("dates not sorted: %v", feed.Dates)
	}

	day := feed.Objects["2024-03-01"]
	if len(day) != 1 {
		t.Fatalf("expected 1 object on 2024-03-01, got %d", len(day))
	}
	obj := day[0]
	if obj.ID != "3542519" || !obj.Hazardous {
		t.Errorf("unexpected object: %+v", obj)
	}
	if len(obj.CloseApproaches) != 1 || obj.CloseApproaches[0].MissDistanceKm != "47112732.9" {
		t.Errorf("unexpected close approach data: %+v", obj.CloseApproaches)
	}
}

func TestFetchNeoFeedUniqueIDsPerDate(t *testing.T) {
	fake := newFakeClient(map[string]fakeResponse{
		"https://api.nasa.gov/neo/rest/v1/feed?api_key=demo&end_date=2024-03-02&start_date=2024-03-01": {body: neoFeedBody},
	})
	c := newTestClient(fake)

	feed, err := c.FetchNeoFeed(context.Background(), "2024-03-01", "2024-03-02")
	if err != nil {
		t.Fatalf("FetchNeoFeed returned error: %v", err)
	}
	for date, objects := range feed.Objects {
		seen := make(map[string]bool, len(objects))
		for _, obj := range objects {
			if seen[obj.ID] {
				t.Errorf("duplicate object id %s on %s", obj.ID, date)
			}
			seen[obj.ID] = true
		}
	}
}

func TestFetchNeoFeedReversedRangeSkipsNetwork(t *testing.T) {
	fake := newFakeClient(nil)
	c := newTestClient(fake)

	_, err := c.FetchNeoFeed(context.Background(), "2024-03-05", "2024-03-01")
	if KindOf(err) != KindInvalidRange {
		t.Fatalf("expected invalid range error, got %v", err)
	}
	if fake.callCount() != 0 {
		t.Fatalf("expected no network calls, got %d", fake.callCount())
	}
}

func TestFetchNeoFeedWindowTooWide(t *testing.T) {
	fake := newFakeClient(nil)
	c := newTestClient(fake)

	_, err := c.FetchNeoFeed(context.Background(), "2024-03-01", "2024-03-12")
	if KindOf(err) != KindInvalidRange {
		t.Fatalf("expected invalid range error for 11 day window, got %v", err)
	}
	if fake.callCount() != 0 {
		t.Fatalf("expected no network calls, got %d", fake.callCount())
	}
}

func TestFetchNeoFeedMissingDates(t *testing.T) {
	fake := newFakeClient(nil)
	c := newTestClient(fake)

	_, err := c.FetchNeoFeed(context.Background(), "", "2024-03-01")
	if KindOf(err) != KindInvalidParams {
		t.Fatalf("expected invalid params error, got %v", err)
	}
}

func TestFetchNeoFeedMissingContainer(t *testing.T) {
	fake := newFakeClient(map[string]fakeResponse{
		"https://api.nasa.gov/neo/rest/v1/feed?api_key=demo&end_date=2024-03-02&start_date=2024-03-01": {
			body: `{"element_count": 0}`,
		},
	})
	c := newTestClient(fake)

	_, err := c.FetchNeoFeed(context.Background(), "2024-03-01", "2024-03-02")
	if KindOf(err) != KindMalformedEnvelope {
		t.Fatalf("expected malformed envelope error, got %v", err)
	}
}

func TestFetchNeoDetail(t *testing.T) {
	body := `{
	  "id": "3542519",
	  "name": "(2010 PK9)",
	  "absolute_magnitude_h": 21.87,
	  "estimated_diameter": {"kilometers": {"estimated_diameter_min": 0.11, "estimated_diameter_max": 0.25}},
	  "is_potentially_hazardous_asteroid": true,
	  "close_approach_data": [
	    {"close_approach_date": "1975-06-05", "miss_distance": {"kilometers": "7912281.8"}, "relative_velocity": {"kilometers_per_hour": "48447.2"}},
	    {"close_approach_date": "2024-03-01", "miss_distance": {"kilometers": "47112732.9"}, "relative_velocity": {"kilometers_per_hour": "30548.5"}}
	  ]
	}`
	fake := newFakeClient(map[string]fakeResponse{
		"https://api.nasa.gov/neo/rest/v1/neo/3542519?api_key=demo": {body: body},
	})
	c := newTestClient(fake)

	obj, err := c.FetchNeoDetail(context.Background(), "3542519")
	if err != nil {
		t.Fatalf("FetchNeoDetail returned error: %v", err)
	}
	if obj.ID != "3542519" {
		t.Errorf("unexpected id: %s", obj.ID)
	}
	if len(obj.CloseApproaches) != 2 {
		t.Errorf("expected 2 close approaches, got %d", len(obj.CloseApproaches))
	}
}

func TestFetchNeoDetailRequiresID(t *testing.T) {
	fake := newFakeClient(nil)
	c := newTestClient(fake)

	_, err := c.FetchNeoDetail(context.Background(), "")
	if KindOf(err) != KindInvalidParams {
		t.Fatalf("expected invalid params error, got %v", err)
	}
	if fake.callCount() != 0 {
		t.Fatalf("expected no network calls, got %d", fake.callCount())
	}
}
