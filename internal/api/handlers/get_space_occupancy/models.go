package get_space_occupancy

import (
	"math"

	"github.com/m04kA/SMC-StudyRoomsService/internal/domain"
	getDailyOccupancy "github.com/m04kA/SMC-StudyRoomsService/internal/usecase/get_daily_occupancy"
)

// OccupancyResponse HTTP response model
type OccupancyResponse struct {
	SpaceID   int64                  `json:"spaceId"`
	SpaceName string                 `json:"spaceName"`
	From      string                 `json:"from"`
	To        string                 `json:"to"`
	Days      []OccupancyDayResponse `json:"days"`
}

// OccupancyDayResponse загрузка за один день
type OccupancyDayResponse struct {
	Date              string  `json:"date"`
	ReservationsCount int     `json:"reservationsCount"`
	OccupiedMinutes   int     `json:"occupiedMinutes"`
	TotalMinutes      int     `json:"totalMinutes"`
	Percentage        float64 `json:"percentage"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getDailyOccupancy.Response) *OccupancyResponse {
	days := make([]OccupancyDayResponse, 0, len(resp.Entries))
	for _, e := range resp.Entries {
		days = append(days, OccupancyDayResponse{
			Date:              e.Date.Format(domain.DateFormat),
			ReservationsCount: e.ReservationsCount,
			OccupiedMinutes:   e.OccupiedMinutes,
			TotalMinutes:      e.TotalMinutes,
			Percentage:        math.Round(e.Percentage*100) / 100,
		})
	}

	return &OccupancyResponse{
		SpaceID:   resp.SpaceID,
		SpaceName: resp.SpaceName,
		From:      resp.StartDate.Format(domain.DateFormat),
		To:        resp.EndDate.Format(domain.DateFormat),
		Days:      days,
	}
}
