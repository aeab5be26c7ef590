package nasa

import (
	"context"
	"testing"
)

func TestFetchRoverPhotos(t *testing.T) {
	body := `{"photos":[
	  {"id":102693,"img_src":"https://mars.nasa.gov/msl/01000/a.jpg","earth_date":"2015-05-30","rover":{"name":"Curiosity"},"camera":{"full_name":"Front Hazard Avoidance Camera"}},
	  {"id":102694,"img_src":"https://mars.nasa.gov/msl/01000/b.jpg","earth_date":"2015-05-30","rover":{"name":"Curiosity"},"camera":{"full_name":"Rear Hazard Avoidance Camera"}}
	]}`
	fake := newFakeClient(map[string]fakeResponse{
		"https://api.nasa.gov/mars-photos/api/v1/rovers/Curiosity/photos?api_key=demo&sol=1000": {body: body},
	})
	c := newTestClient(fake)

	photos, err := c.FetchRoverPhotos(context.Background(), "Curiosity", 1000, "")
	if err != nil {
		t.Fatalf("FetchRoverPhotos returned error: %v", err)
	}
	if len(photos) != 2 {
		t.Fatalf("expected 2 photos, got %d", len(photos))
	}
	if photos[0].ID != 102693 || photos[0].RoverName != "Curiosity" {
		t.Errorf("unexpected first photo: %+v", photos[0])
	}
	if photos[0].CameraFullName != "Front Hazard Avoidance Camera" {
		t.Errorf("unexpected camera name: %s", photos[0].CameraFullName)
	}
}

func TestFetchRoverPhotosCameraFilter(t *testing.T) {
	fake := newFakeClient(map[string]fakeResponse{
		"https://api.nasa.gov/mars-photos/api/v1/rovers/Curiosity/photos?api_key=demo&camera=FHAZ&sol=1000": {body: `{"photos":[]}`},
	})
	c := newTestClient(fake)

	if _, err := c.FetchRoverPhotos(context.Background(), "Curiosity", 1000, "FHAZ"); err != nil {
		t.Fatalf("FetchRoverPhotos returned error: %v", err)
	}
}

func TestFetchRoverPhotosZeroPhotosIsEmptyResult(t *testing.T) {
	fake := newFakeClient(map[string]fakeResponse{
		"https://api.nasa.gov/mars-photos/api/v1/rovers/Curiosity/photos?api_key=demo&sol=1000": {body: `{"photos":[]}`},
	})
	c := newTestClient(fake)

	photos, err := c.FetchRoverPhotos(context.Background(), "Curiosity", 1000, "")
	if err != nil {
		t.Fatalf("expected empty result without error, got %v", err)
	}
	if len(photos) != 0 {
		t.Fatalf("expected 0 photos, got %d", len(photos))
	}
}

func TestFetchRoverPhotosMissingContainer(t *testing.T) {
	fake := newFakeClient(map[string]fakeResponse{
		"https://api.nasa.gov/mars-photos/api/v1/rovers/Curiosity/photos?api_key=demo&sol=1000": {body: `{"images":[]}`},
	})
	c := newTestClient(fake)

	_, err := c.FetchRoverPhotos(context.Background(), "Curiosity", 1000, "")
	if KindOf(err) != KindMalformedEnvelope {
		t.Fatalf("expected malformed envelope error, got %v", err)
	}
}

func TestFetchRoverPhotosRequiresRover(t *testing.T) {
	fake := newFakeClient(nil)
	c := newTestClient(fake)

	_, err := c.FetchRoverPhotos(context.Background(), "", 1000, "")
	if KindOf(err) != KindInvalidParams {
		t.Fatalf("expected invalid params error, got %v", err)
	}
	if fake.callCount() != 0 {
		t.Fatalf("expected no network calls, got %d", fake.callCount())
	}
}
