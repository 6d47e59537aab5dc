package get_weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudyRoomsService/internal/domain"
	"github.com/m04kA/SMC-StudyRoomsService/pkg/logger"
)

type fakeService struct {
	at  *time.Time
	err error
}

func (f *fakeService) GetWeather(_ context.Context, _, _ float64, at *time.Time) (*domain.Weather, error) {
	f.at = at
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Weather{TemperatureCelsius: 18.5, Timestamp: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}, nil
}

func serve(svc WeatherService, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.Nop()).Handle(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_Current(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "/api/v1/weather?lat=37.98&lon=23.72")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.at)

	var body WeatherResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, 18.5, body.TemperatureCelsius)
	assert.Equal(t, "2026-03-10T12:00:00Z", body.Timestamp)
}

func TestHandle_AtHour(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "/api/v1/weather?lat=37.98&lon=23.72&at=2026-03-10T15:30")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.at)
	assert.Equal(t, time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC), *svc.at)
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, "/api/v1/weather?lon=23.72").Code)
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, "/api/v1/weather?lat=north&lon=23.72").Code)
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, "/api/v1/weather?lat=1&lon=2&at=tomorrow").Code)

	unavailable := &fakeService{err: fmt.Errorf("weather %w", domain.ErrExternalUnavailable)}
	assert.Equal(t, http.StatusServiceUnavailable, serve(unavailable, "/api/v1/weather?lat=1&lon=2").Code)

	invalid := &fakeService{err: fmt.Errorf("%w: Latitude must be between -90 and 90", domain.ErrInvalidInput)}
	assert.Equal(t, http.StatusBadRequest, serve(invalid, "/api/v1/weather?lat=100&lon=2").Code)
}
