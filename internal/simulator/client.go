// Package simulator loads the garage layout from the external simulator feed
// and seeds the store through the plain create operations. It runs once at
// startup and only against an empty store.
package simulator

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// GarageConfig is the simulator's garage description.
type GarageConfig struct {
	Garage []SectorConfig `json:"garage"`
	Spots  []SpotConfig   `json:"spots"`
}

type SectorConfig struct {
	Sector               string          `json:"sector"`
	BasePrice            decimal.Decimal `json:"base_price"`
	MaxCapacity          int             `json:"max_capacity"`
	OpenHour             string          `json:"open_hour"`
	CloseHour            string          `json:"close_hour"`
	DurationLimitMinutes int             `json:"duration_limit_minutes"`
}

type SpotConfig struct {
	ID     int64   `json:"id"`
	Sector string  `json:"sector"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
}

// Client fetches the garage configuration over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) FetchGarageConfig(ctx context.Context) (GarageConfig, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/garage", nil)
	if err != nil {
		return GarageConfig{}, fmt.Errorf("build garage request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return GarageConfig{}, fmt.Errorf("fetch garage config: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return GarageConfig{}, fmt.Errorf("fetch garage config: unexpected status %d", resp.StatusCode)
	}

	var config GarageConfig
	if err := json.NewDecoder(resp.Body).Decode(&config); err != nil {
		return GarageConfig{}, fmt.Errorf("decode garage config: %w", err)
	}
	return config, nil
}
