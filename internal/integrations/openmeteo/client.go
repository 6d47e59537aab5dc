package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-StudyRoomsService/internal/domain"
)

// Client клиент Open-Meteo
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient создает новый экземпляр клиента
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// GetCurrentWeather получает текущую погоду
func (c *Client) GetCurrentWeather(ctx context.Context, latitude, longitude float64) (*domain.Weather, error) {
	params := baseParams(latitude, longitude)
	params.Set("current", variables)

	var resp currentResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, err
	}
	if resp.Current == nil {
		return nil, ErrNoData
	}

	ts, err := time.Parse(timeLayout, resp.Current.Time)
	if err != nil {
		return nil, fmt.Errorf("%w: bad time %q: %v", ErrInvalidResponse, resp.Current.Time, err)
	}

	return &domain.Weather{
		TemperatureCelsius: resp.Current.Temperature2m,
		WindSpeed:          resp.Current.WindSpeed10m,
		Precipitation:      resp.Current.Precipitation,
		WeatherCode:        resp.Current.WeatherCode,
		Timestamp:          ts,
	}, nil
}

// GetWeatherAt получает почасовой прогноз на начало часа at (UTC)
func (c *Client) GetWeatherAt(ctx context.Context, latitude, longitude float64, at time.Time) (*domain.Weather, error) {
	hour := at.UTC().Truncate(time.Hour).Format(timeLayout)

	params := baseParams(latitude, longitude)
	params.Set("hourly", variables)
	params.Set("start_hour", hour)
	params.Set("end_hour", hour)

	var resp hourlyResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, err
	}
	if resp.Hourly == nil {
		return nil, ErrNoData
	}

	h := resp.Hourly
	for i, t := range h.Time {
		if t != hour {
			continue
		}
		if i >= len(h.Temperature2m) || i >= len(h.WindSpeed10m) || i >= len(h.Precipitation) {
			return nil, fmt.Errorf("%w: hourly arrays are shorter than time axis", ErrInvalidResponse)
		}
		ts, _ := time.Parse(timeLayout, t)
		weather := &domain.Weather{
			TemperatureCelsius: h.Temperature2m[i],
			WindSpeed:          h.WindSpeed10m[i],
			Precipitation:      h.Precipitation[i],
			Timestamp:          ts,
		}
		if i < len(h.WeatherCode) {
			weather.WeatherCode = h.WeatherCode[i]
		}
		return weather, nil
	}

	return nil, fmt.Errorf("%w: hour %s", ErrNoData, hour)
}

func (c *Client) get(ctx context.Context, params url.Values, out interface{}) error {
	endpoint := c.baseURL + "/forecast?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}

func baseParams(latitude, longitude float64) url.Values {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))
	params.Set("timezone", "UTC")
	return params
}
