package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/yourusername/turf-advisor/internal/httpclient"
	"github.com/yourusername/turf-advisor/internal/models"
)

// Source fetches current weather for a coordinate pair. Implemented by
// OWMClient in production and by test doubles.
type Source interface {
	FetchCurrent(ctx context.Context, lat, lon float64) (*models.WeatherObservation, error)
}

// owmResponse mirrors the OpenWeatherMap current-weather payload, kept
// to the fields the engine consumes.
type owmResponse struct {
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Rain struct {
		OneHour float64 `json:"1h"`
	} `json:"rain"`
	Snow struct {
		OneHour float64 `json:"1h"`
	} `json:"snow"`
}

// OWMClient implements Source against the OpenWeatherMap current
// weather API.
type OWMClient struct {
	httpClient *httpclient.Client
	baseURL    string
	apiKey     string
	timeout    time.Duration
}

// NewOWMClient creates a new OpenWeatherMap client
func NewOWMClient(httpClient *httpclient.Client, baseURL, apiKey string, timeout time.Duration) *OWMClient {
	return &OWMClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		timeout:    timeout,
	}
}

// FetchCurrent fetches and normalizes the current weather at the given
// coordinates.
func (c *OWMClient) FetchCurrent(ctx context.Context, lat, lon float64) (*models.WeatherObservation, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("weather API key not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%.4f", lat))
	params.Set("lon", fmt.Sprintf("%.4f", lon))
	params.Set("units", "metric")
	params.Set("appid", c.apiKey)

	resp, err := c.httpClient.Get(ctx, c.baseURL+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather API returned status %d", resp.StatusCode)
	}

	var payload owmResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode weather response: %w", err)
	}

	obs := &models.WeatherObservation{
		Temperature:   payload.Main.Temp,
		Humidity:      payload.Main.Humidity,
		WindSpeed:     payload.Wind.Speed,
		Precipitation: payload.Rain.OneHour + payload.Snow.OneHour,
		Condition:     models.WeatherVariable,
		CapturedAt:    time.Now(),
	}
	if len(payload.Weather) > 0 {
		obs.Condition = NormalizeCondition(payload.Weather[0].Main)
		obs.Description = payload.Weather[0].Description
	}

	return obs, nil
}
