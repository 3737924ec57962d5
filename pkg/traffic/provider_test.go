package traffic_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/njiago/njiago/pkg/geospatial"
	"github.com/njiago/njiago/pkg/traffic"
)

func nairobiBox() geospatial.BoundingBox {
	return geospatial.BoundingBox{
		MinLat: -1.35,
		MinLon: 36.75,
		MaxLat: -1.20,
		MaxLon: 36.95,
	}
}

func TestProviderClient_FlowRecords(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("apiKey") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		fmt.Fprint(w, `{"results":[{"currentFlow":{"jamFactor":4.2}},{"currentFlow":{"jamFactor":1.1}}]}`)
	}))
	defer server.Close()

	client := traffic.NewProviderClient(traffic.ProviderConfig{
		Name:     "here",
		Endpoint: server.URL,
		APIKey:   "test-key",
	})

	records, err := client.FlowRecords(context.Background(), nairobiBox())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 flow records, got %d", len(records))
	}
	if records[0].JamFactor != 4.2 || records[1].JamFactor != 1.1 {
		t.Errorf("unexpected jam factors: %+v", records)
	}
}

func TestProviderClient_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := traffic.NewProviderClient(traffic.ProviderConfig{
		Name:     "here",
		Endpoint: server.URL,
		APIKey:   "test-key",
	})

	_, err := client.FlowRecords(context.Background(), nairobiBox())
	if err == nil {
		t.Fatal("expected an error for a non-200 response")
	}
}

func TestProviderClient_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results": not json`)
	}))
	defer server.Close()

	client := traffic.NewProviderClient(traffic.ProviderConfig{
		Name:     "here",
		Endpoint: server.URL,
		APIKey:   "test-key",
	})

	_, err := client.FlowRecords(context.Background(), nairobiBox())
	if err == nil {
		t.Fatal("expected an error for a malformed body")
	}
}
