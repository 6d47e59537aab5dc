package get_space_occupancy

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/m04kA/SMC-StudyRoomsService/internal/domain"
	getDailyOccupancy "github.com/m04kA/SMC-StudyRoomsService/internal/usecase/get_daily_occupancy"
	"github.com/m04kA/SMC-StudyRoomsService/pkg/logger"
)

type fakeUseCase struct {
	got *getDailyOccupancy.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *getDailyOccupancy.Request) (*getDailyOccupancy.Response, error) {
	f.got = req
	return &getDailyOccupancy.Response{
		SpaceID:   req.SpaceID,
		SpaceName: "Reading Room",
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Entries: []domain.OccupancyEntry{
			{Date: req.StartDate, ReservationsCount: 2, OccupiedMinutes: 120, TotalMinutes: 1440, Percentage: 8.333333},
		},
	}, nil
}

func serve(t *testing.T, uc GetDailyOccupancyUseCase, target string) *httptest.ResponseRecorder {
	t.Helper()
	r := mux.NewRouter()
	r.HandleFunc("/staff/spaces/{spaceId}/occupancy", NewHandler(uc, logger.Nop()).Handle)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_JSON(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(t, uc, "/staff/spaces/3/occupancy?from=2026-03-01&to=2026-03-01")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(3), uc.got.SpaceID)

	var body OccupancyResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Days, 1)
	assert.Equal(t, "2026-03-01", body.Days[0].Date)
	assert.Equal(t, 8.33, body.Days[0].Percentage)
}

func TestHandle_XLSX(t *testing.T) {
	rec := serve(t, &fakeUseCase{}, "/staff/spaces/3/occupancy?from=2026-03-01&to=2026-03-01&format=xlsx")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, contentTypeXLSX, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "occupancy_3_2026-03-01_2026-03-01.xlsx")

	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer f.Close()
	assert.NotEmpty(t, f.GetSheetList())
}

func TestHandle_BadParams(t *testing.T) {
	for _, target := range []string{
		"/staff/spaces/x/occupancy?from=2026-03-01&to=2026-03-02",
		"/staff/spaces/3/occupancy?to=2026-03-02",
		"/staff/spaces/3/occupancy?from=2026-03-01",
		"/staff/spaces/3/occupancy?from=2026-03-01&to=2026-03-02&format=csv",
	} {
		uc := &fakeUseCase{}
		rec := serve(t, uc, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Nil(t, uc.got, target)
	}
}
