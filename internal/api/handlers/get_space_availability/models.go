package get_space_availability

import (
	"github.com/m04kA/SMC-StudyRoomsService/internal/domain"
	getSpaceAvailability "github.com/m04kA/SMC-StudyRoomsService/internal/usecase/get_space_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	SpaceID  int64          `json:"spaceId"`
	Date     string         `json:"date"`
	Capacity int            `json:"capacity"`
	Closed   bool           `json:"closed"`
	Holiday  bool           `json:"holiday"`
	Slots    []SlotResponse `json:"slots"`
}

// SlotResponse один слот сетки
type SlotResponse struct {
	StartTime      string `json:"startTime"`
	EndTime        string `json:"endTime"`
	Occupied       int    `json:"occupied"`
	AvailableSeats int    `json:"availableSeats"`
	IsFull         bool   `json:"isFull"`
	Past           bool   `json:"past"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSpaceAvailability.Response) *AvailabilityResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for i := range resp.Slots {
		slot := &resp.Slots[i]
		slots = append(slots, SlotResponse{
			StartTime:      slot.StartTime.String(),
			EndTime:        slot.EndTime.String(),
			Occupied:       slot.Occupied,
			AvailableSeats: slot.AvailableSeats,
			IsFull:         slot.IsFull(),
			Past:           slot.Past,
		})
	}

	return &AvailabilityResponse{
		SpaceID:  resp.SpaceID,
		Date:     resp.Date.Format(domain.DateFormat),
		Capacity: resp.Capacity,
		Closed:   resp.Closed,
		Holiday:  resp.Holiday,
		Slots:    slots,
	}
}
