package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/artermis-ops/agency-mcp/internal/models"
)

// WeatherService fetches current conditions from a wttr.in-compatible
// endpoint.
type WeatherService struct {
	baseURL  string
	client   *http.Client
	attempts int
}

func NewWeatherService(baseURL string, timeout time.Duration, attempts int) *WeatherService {
	return &WeatherService{
		baseURL:  baseURL,
		client:   &http.Client{Timeout: timeout},
		attempts: attempts,
	}
}

// wttrResponse covers the slice of the j1 payload we use. temp_C arrives as
// a JSON string.
type wttrResponse struct {
	CurrentCondition []struct {
		TempC       string `json:"temp_C"`
		WeatherDesc []struct {
			Value string `json:"value"`
		} `json:"weatherDesc"`
	} `json:"current_condition"`
}

// Current returns the temperature in Celsius and a textual description for a
// city. Unknown city names surface as upstream failures.
func (s *WeatherService) Current(ctx context.Context, city string) (*models.WeatherResponse, error) {
	u := fmt.Sprintf("%s/%s?format=j1", s.baseURL, url.PathEscape(city))

	var body []byte
	err := withRetry(ctx, s.attempts, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return permanent(err)
		}
		resp, err := s.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return fmt.Errorf("weather endpoint returned status %s", resp.Status)
		}
		if resp.StatusCode != http.StatusOK {
			return permanent(fmt.Errorf("weather endpoint returned status %s", resp.Status))
		}
		body, err = io.ReadAll(resp.Body)
		return err
	})
	if err != nil {
		return nil, &models.UpstreamError{Service: "weather", Err: err}
	}

	var w wttrResponse
	if err := json.Unmarshal(body, &w); err != nil {
		return nil, &models.UpstreamError{Service: "weather", Err: fmt.Errorf("decode payload: %w", err)}
	}
	if len(w.CurrentCondition) == 0 || len(w.CurrentCondition[0].WeatherDesc) == 0 {
		return nil, &models.UpstreamError{Service: "weather", Err: fmt.Errorf("payload missing current conditions")}
	}

	temp, err := strconv.ParseFloat(w.CurrentCondition[0].TempC, 64)
	if err != nil {
		return nil, &models.UpstreamError{Service: "weather", Err: fmt.Errorf("parse temperature %q: %w", w.CurrentCondition[0].TempC, err)}
	}

	return &models.WeatherResponse{
		TemperatureC: temp,
		Description:  w.CurrentCondition[0].WeatherDesc[0].Value,
	}, nil
}
