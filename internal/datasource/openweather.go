package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/yourusername/diamond-edge/internal/adjustments"
)

// OpenWeather fetches current city conditions from the OpenWeather API.
type OpenWeather struct {
	baseURL string
	apiKey  string
	client  *RateLimitedHTTPClient
}

// NewOpenWeather creates a weather source.
func NewOpenWeather(baseURL, apiKey string, client *RateLimitedHTTPClient) *OpenWeather {
	return &OpenWeather{baseURL: baseURL, apiKey: apiKey, client: client}
}

type openWeatherResponse struct {
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

// FetchCityWeather fetches metric-unit conditions for a city.
func (s *OpenWeather) FetchCityWeather(ctx context.Context, city string) (adjustments.Weather, error) {
	if s.apiKey == "" {
		return adjustments.Weather{}, fmt.Errorf("no weather API key configured")
	}

	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", s.apiKey)
	q.Set("units", "metric")

	resp, err := s.client.Get(ctx, s.baseURL+"?"+q.Encode())
	if err != nil {
		return adjustments.Weather{}, fmt.Errorf("failed to fetch weather: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return adjustments.Weather{}, fmt.Errorf("weather api returned status %d", resp.StatusCode)
	}

	var out openWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return adjustments.Weather{}, fmt.Errorf("failed to decode weather: %w", err)
	}

	return adjustments.Weather{TempC: out.Main.Temp, WindSpeedMS: out.Wind.Speed}, nil
}
