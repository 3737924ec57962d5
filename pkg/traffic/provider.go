package traffic

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/njiago/njiago/pkg/geospatial"
)

// FlowRecord is one road segment measurement from the external provider.
// JamFactor runs 0 (free flow) to 10 (standstill).
type FlowRecord struct {
	JamFactor float64
}

type FlowProvider interface {
	FlowRecords(ctx context.Context, box geospatial.BoundingBox) ([]FlowRecord, error)
}

// ProviderClient queries a HERE style flow API for jam factors within a
// bounding box.
type ProviderClient struct {
	Name     string
	Endpoint string
	APIKey   string

	HTTPClient *http.Client
}

func NewProviderClient(config ProviderConfig) *ProviderClient {
	return &ProviderClient{
		Name:     config.Name,
		Endpoint: config.Endpoint,
		APIKey:   config.APIKey,

		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (p *ProviderClient) FlowRecords(ctx context.Context, box geospatial.BoundingBox) ([]FlowRecord, error) {
	requestURL := fmt.Sprintf(
		"%s?in=bbox:%f,%f,%f,%f&locationReferencing=none&apiKey=%s",
		p.Endpoint, box.MinLon, box.MinLat, box.MaxLon, box.MaxLat, p.APIKey,
	)

	req, err := http.NewRequestWithContext(ctx, "GET", requestURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("flow provider returned status %d", resp.StatusCode)
	}

	jsonBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var flowData struct {
		Results []struct {
			CurrentFlow struct {
				JamFactor float64 `json:"jamFactor"`
			} `json:"currentFlow"`
		} `json:"results"`
	}
	if err := json.Unmarshal(jsonBytes, &flowData); err != nil {
		return nil, err
	}

	var records []FlowRecord
	for _, result := range flowData.Results {
		records = append(records, FlowRecord{
			JamFactor: result.CurrentFlow.JamFactor,
		})
	}

	return records, nil
}
