package nasa

import (
	"context"
	"testing"
)

func TestSearchTechTransferPositionalMapping(t *testing.T) {
	body := `{"results":[
	  ["42","LAR-123","<span>Widget</span>","desc text","","Propulsion","","","","JSC","http://img"]
	]}`
	fake := newFakeClient(map[string]fakeResponse{
		"https://api.nasa.gov/techtransfer/patent/?engine&api_key=demo": {body: body},
	})
	c := newTestClient(fake)

	results, err := c.SearchTechTransfer(context.Background(), TechPatent, "engine")
	if err != nil {
		t.Fatalf("SearchTechTransfer returned error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	got := results[0]
	if got.ID != "42" || got.Code != "LAR-123" {
		t.Errorf("unexpected id/code: %s/%s", got.ID, got.Code)
	}
	if got.Title != "Widget" {
		t.Errorf("expected markup-stripped title, got %q", got.Title)
	}
	if got.DescriptionHTML != "desc text" {
		t.Errorf("unexpected description: %q", got.DescriptionHTML)
	}
	if got.Category != "Propulsion" || got.Center != "JSC" || got.ImageURL != "http://img" {
		t.Errorf("unexpected fields: %+v", got)
	}
}

func TestSearchTechTransferPreservesDescriptionMarkup(t *testing.T) {
	body := `{"results":[
	  ["1","MSC-1","<span>Engine</span>","An <b>efficient</b> engine","","Propulsion","","","","JSC",""]
	]}`
	fake := newFakeClient(map[string]fakeResponse{
		"https://api.nasa.gov/techtransfer/software/?engine&api_key=demo": {body: body},
	})
	c := newTestClient(fake)

	results, err := c.SearchTechTransfer(context.Background(), TechSoftware, "engine")
	if err != nil {
		t.Fatalf("SearchTechTransfer returned error: %v", err)
	}
	if results[0].DescriptionHTML != "An <b>efficient</b> engine" {
		t.Errorf("description markup must be preserved, got %q", results[0].DescriptionHTML)
	}
	if results[0].Title != "Engine" {
		t.Errorf("title markup must be stripped, got %q", results[0].Title)
	}
}

func TestSearchTechTransferToleratesShortRows(t *testing.T) {
	body := `{"results":[["7","LEW-7","Title","desc"]]}`
	fake := newFakeClient(map[string]fakeResponse{
		"https://api.nasa.gov/techtransfer/spinoff/?foam&api_key=demo": {body: body},
	})
	c := newTestClient(fake)

	results, err := c.SearchTechTransfer(context.Background(), TechSpinoff, "foam")
	if err != nil {
		t.Fatalf("SearchTechTransfer returned error: %v", err)
	}
	if results[0].Center != "" || results[0].ImageURL != "" {
		t.Errorf("short row fields must be empty, got %+v", results[0])
	}
}

func TestSearchTechTransferEmptyResults(t *testing.T) {
	fake := newFakeClient(map[string]fakeResponse{
		"https://api.nasa.gov/techtransfer/patent/?nothing&api_key=demo": {body: `{"results":[]}`},
	})
	c := newTestClient(fake)

	results, err := c.SearchTechTransfer(context.Background(), TechPatent, "nothing")
	if err != nil {
		t.Fatalf("expected empty result without error, got %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected 0 results, got %d", len(results))
	}
}

func TestSearchTechTransferMissingContainer(t *testing.T) {
	fake := newFakeClient(map[string]fakeResponse{
		"https://api.nasa.gov/techtransfer/patent/?engine&api_key=demo": {body: `{"count":0}`},
	})
	c := newTestClient(fake)

	_, err := c.SearchTechTransfer(context.Background(), TechPatent, "engine")
	if KindOf(err) != KindMalformedEnvelope {
		t.Fatalf("expected malformed envelope error, got %v", err)
	}
}

func TestSearchTechTransferValidation(t *testing.T) {
	fake := newFakeClient(nil)
	c := newTestClient(fake)

	if _, err := c.SearchTechTransfer(context.Background(), "journal", "engine"); KindOf(err) != KindInvalidParams {
		t.Fatalf("expected invalid params for unknown collection, got %v", err)
	}
	if _, err := c.SearchTechTransfer(context.Background(), TechPatent, ""); KindOf(err) != KindInvalidParams {
		t.Fatalf("expected invalid params for empty term, got %v", err)
	}
	if fake.callCount() != 0 {
		t.Fatalf("expected no network calls, got %d", fake.callCount())
	}
}
