package models

import (
	"time"

	"github.com/m04kA/SMC-StudyRoomsService/internal/domain"
)

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID              int64     `json:"id"`
	SpaceID         int64     `json:"spaceId"`
	UserID          int64     `json:"userId"`
	Date            string    `json:"date"`      // "2026-03-10"
	StartTime       string    `json:"startTime"` // "10:00"
	EndTime         string    `json:"endTime"`   // "11:30"
	DurationMinutes int       `json:"durationMinutes"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// CloseSpaceResponse результат закрытия помещения на день
type CloseSpaceResponse struct {
	SpaceID        int64  `json:"spaceId"`
	Date           string `json:"date"`
	CancelledCount int    `json:"cancelledCount"`
}

// PenaltyResponse состояние штрафа пользователя
type PenaltyResponse struct {
	UserID       int64   `json:"userId"`
	Penalized    bool    `json:"penalized"`
	PenaltyUntil *string `json:"penaltyUntil,omitempty"`
}

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	return &ReservationResponse{
		ID:              r.ID,
		SpaceID:         r.SpaceID,
		UserID:          r.UserID,
		Date:            r.Date.Format(domain.DateFormat),
		StartTime:       r.StartTime.String(),
		EndTime:         r.EndTime.String(),
		DurationMinutes: r.DurationMinutes(),
		Status:          string(r.Status),
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(reservations)),
	}

	for _, r := range reservations {
		resp.Reservations = append(resp.Reservations, *FromDomainReservation(r))
	}

	return resp
}

// FromDomainUserPenalty конвертирует состояние штрафа пользователя в DTO
func FromDomainUserPenalty(user *domain.User, today time.Time) *PenaltyResponse {
	resp := &PenaltyResponse{
		UserID:    user.ID,
		Penalized: user.IsPenalized(today),
	}
	if user.PenaltyUntil != nil {
		until := user.PenaltyUntil.Format(domain.DateFormat)
		resp.PenaltyUntil = &until
	}
	return resp
}
