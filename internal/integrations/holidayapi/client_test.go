package holidayapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudyRoomsService/internal/domain"
	"github.com/m04kA/SMC-StudyRoomsService/pkg/logger"
)

type fakeCache struct {
	data   map[int][]Holiday
	getErr error
	sets   int
}

func (f *fakeCache) Get(_ context.Context, year int, _ string) ([]Holiday, bool, error) {
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	h, ok := f.data[year]
	return h, ok, nil
}

func (f *fakeCache) Set(_ context.Context, year int, _ string, holidays []Holiday) error {
	f.sets++
	f.data[year] = holidays
	return nil
}

func holidayServer(t *testing.T, calls *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		assert.Equal(t, "/PublicHolidays/2025/GR", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"date":"2025-03-25","localName":"Ευαγγελισμός","name":"Independence Day","countryCode":"GR","global":true}]`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_IsHoliday(t *testing.T) {
	var calls int32
	srv := holidayServer(t, &calls)
	client := NewClient(srv.URL, "gr", time.Second, logger.Nop())

	assert.True(t, client.IsHoliday(context.Background(), domain.NewDate(2025, 3, 25)))
	assert.False(t, client.IsHoliday(context.Background(), domain.NewDate(2025, 3, 26)))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestClient_IsHoliday_FailOpen(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()
	client := NewClient(srv.URL, "GR", time.Second, logger.Nop())

	assert.False(t, client.IsHoliday(context.Background(), domain.NewDate(2025, 3, 25)))

	_, err := client.GetPublicHolidays(context.Background(), 2025)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_IsHoliday_Unreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "GR", 200*time.Millisecond, logger.Nop())

	assert.False(t, client.IsHoliday(context.Background(), domain.NewDate(2025, 3, 25)))
}

func TestClient_UnknownCountry(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	client := NewClient(srv.URL, "XX", time.Second, logger.Nop())

	_, err := client.GetPublicHolidays(context.Background(), 2025)
	assert.ErrorIs(t, err, ErrUnknownCountry)
}

func TestClient_UsesCache(t *testing.T) {
	var calls int32
	srv := holidayServer(t, &calls)
	cache := &fakeCache{data: map[int][]Holiday{}}
	client := NewClient(srv.URL, "GR", time.Second, logger.Nop())
	client.UseCache(cache)

	assert.True(t, client.IsHoliday(context.Background(), domain.NewDate(2025, 3, 25)))
	assert.False(t, client.IsHoliday(context.Background(), domain.NewDate(2025, 1, 2)))

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, 1, cache.sets)
}

func TestClient_CacheErrorFallsBackToHTTP(t *testing.T) {
	var calls int32
	srv := holidayServer(t, &calls)
	client := NewClient(srv.URL, "GR", time.Second, logger.Nop())
	client.UseCache(&fakeCache{data: map[int][]Holiday{}, getErr: errors.New("redis down")})

	holidays, err := client.GetPublicHolidays(context.Background(), 2025)

	require.NoError(t, err)
	assert.Len(t, holidays, 1)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
