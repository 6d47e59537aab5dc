package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-StudyRoomsService/internal/domain"
	createReservation "github.com/m04kA/SMC-StudyRoomsService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-StudyRoomsService/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	SpaceID   int64  `json:"spaceId"`
	Date      string `json:"date"`      // "2026-03-10"
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "11:30"
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID              int64  `json:"id"`
	SpaceID         int64  `json:"spaceId"`
	UserID          int64  `json:"userId"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case, userID берётся из заголовка
func (r *CreateReservationRequest) ToUseCaseRequest(userID int64) (*createReservation.Request, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return nil, errInvalidDate
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, errInvalidTime
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, errInvalidTime
	}

	return &createReservation.Request{
		UserID:    userID,
		SpaceID:   r.SpaceID,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:              resp.ID,
		SpaceID:         resp.SpaceID,
		UserID:          resp.UserID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
