package models

import (
	"time"

	"github.com/m04kA/SMC-StudyRoomsService/internal/domain"
	"github.com/m04kA/SMC-StudyRoomsService/pkg/types"
)

// Request модели

// CreateSpaceRequest запрос на создание помещения
type CreateSpaceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Capacity    int    `json:"capacity"`
	OpenTime    string `json:"openTime,omitempty"`  // "08:00", не нужен при fullDay
	CloseTime   string `json:"closeTime,omitempty"` // "20:00", не нужен при fullDay
	FullDay     bool   `json:"fullDay"`
}

// ToDomainSpace конвертирует request в domain модель
func (r *CreateSpaceRequest) ToDomainSpace() *domain.Space {
	space := &domain.Space{
		Name:        r.Name,
		Description: r.Description,
		Capacity:    r.Capacity,
		FullDay:     r.FullDay,
	}
	if !r.FullDay {
		space.OpenTime = types.TimeString(r.OpenTime)
		space.CloseTime = types.TimeString(r.CloseTime)
	}
	return space
}

// UpdateSpaceRequest запрос на обновление помещения.
// Поддерживает частичное обновление: nil поля не меняются.
type UpdateSpaceRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Capacity    *int    `json:"capacity,omitempty"`
	OpenTime    *string `json:"openTime,omitempty"`
	CloseTime   *string `json:"closeTime,omitempty"`
	FullDay     *bool   `json:"fullDay,omitempty"`
}

// ApplyToSpace применяет изменения к помещению
func (r *UpdateSpaceRequest) ApplyToSpace(space *domain.Space) {
	if r.Name != nil {
		space.Name = *r.Name
	}
	if r.Description != nil {
		space.Description = *r.Description
	}
	if r.Capacity != nil {
		space.Capacity = *r.Capacity
	}
	if r.OpenTime != nil {
		space.OpenTime = types.TimeString(*r.OpenTime)
	}
	if r.CloseTime != nil {
		space.CloseTime = types.TimeString(*r.CloseTime)
	}
	if r.FullDay != nil {
		space.FullDay = *r.FullDay
	}
	if space.FullDay {
		space.OpenTime = ""
		space.CloseTime = ""
	}
}

// Response модели

// SpaceResponse ответ с данными помещения
type SpaceResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Capacity    int       `json:"capacity"`
	OpenTime    *string   `json:"openTime,omitempty"`
	CloseTime   *string   `json:"closeTime,omitempty"`
	FullDay     bool      `json:"fullDay"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SpaceListResponse ответ со списком помещений
type SpaceListResponse struct {
	Spaces []SpaceResponse `json:"spaces"`
}

// FromDomainSpace конвертирует domain модель в DTO
func FromDomainSpace(s *domain.Space) *SpaceResponse {
	if s == nil {
		return nil
	}

	resp := &SpaceResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Capacity:    s.Capacity,
		FullDay:     s.FullDay,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}

	if !s.FullDay {
		openTime, closeTime := s.OpenTime.String(), s.CloseTime.String()
		resp.OpenTime = &openTime
		resp.CloseTime = &closeTime
	}

	return resp
}

// FromDomainSpaceList конвертирует список domain моделей в DTO
func FromDomainSpaceList(spaces []*domain.Space) *SpaceListResponse {
	resp := &SpaceListResponse{
		Spaces: make([]SpaceResponse, 0, len(spaces)),
	}
	for _, s := range spaces {
		resp.Spaces = append(resp.Spaces, *FromDomainSpace(s))
	}
	return resp
}
