package openmeteo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GetCurrentWeather(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "37.98", q.Get("latitude"))
		assert.Equal(t, "23.72", q.Get("longitude"))
		assert.Equal(t, variables, q.Get("current"))
		assert.Equal(t, "UTC", q.Get("timezone"))
		_, _ = w.Write([]byte(`{"current":{"time":"2025-06-01T10:15","temperature_2m":27.5,"wind_speed_10m":12.1,"precipitation":0,"weather_code":1}}`))
	}))
	defer srv.Close()

	weather, err := NewClient(srv.URL, time.Second).GetCurrentWeather(context.Background(), 37.98, 23.72)

	require.NoError(t, err)
	assert.Equal(t, 27.5, weather.TemperatureCelsius)
	assert.Equal(t, 12.1, weather.WindSpeed)
	require.NotNil(t, weather.WeatherCode)
	assert.Equal(t, 1, *weather.WeatherCode)
	assert.Equal(t, time.Date(2025, 6, 1, 10, 15, 0, 0, time.UTC), weather.Timestamp)
}

func TestClient_GetCurrentWeather_MissingBlock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).GetCurrentWeather(context.Background(), 0, 0)

	assert.ErrorIs(t, err, ErrNoData)
}

func TestClient_GetWeatherAt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "2025-06-01T14:00", q.Get("start_hour"))
		assert.Equal(t, "2025-06-01T14:00", q.Get("end_hour"))
		_, _ = w.Write([]byte(`{"hourly":{"time":["2025-06-01T14:00"],"temperature_2m":[30.2],"wind_speed_10m":[8],"precipitation":[0.4],"weather_code":[61]}}`))
	}))
	defer srv.Close()

	at := time.Date(2025, 6, 1, 14, 47, 0, 0, time.UTC)
	weather, err := NewClient(srv.URL, time.Second).GetWeatherAt(context.Background(), 37.98, 23.72, at)

	require.NoError(t, err)
	assert.Equal(t, 30.2, weather.TemperatureCelsius)
	assert.Equal(t, 0.4, weather.Precipitation)
	assert.Equal(t, time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC), weather.Timestamp)
}

func TestClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":true,"reason":"Latitude must be in range"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).GetCurrentWeather(context.Background(), 0, 0)

	assert.ErrorIs(t, err, ErrInvalidResponse)
}
