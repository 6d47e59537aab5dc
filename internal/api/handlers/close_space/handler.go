package close_space

import (
	"net/http"

	"github.com/m04kA/SMC-StudyRoomsService/internal/api/handlers"
	"github.com/m04kA/SMC-StudyRoomsService/internal/domain"
)

const msgInvalidSpaceID = "invalid space id"

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/staff/spaces/{spaceId}/close
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	spaceID, err := handlers.PathID(r, "spaceId")
	if err != nil {
		h.logger.Warn("POST /staff/spaces/{id}/close - Invalid space ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpaceID)
		return
	}

	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		h.logger.Warn("POST /staff/spaces/{id}/close - %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.service.StaffCloseSpaceForDay(r.Context(), spaceID, date)
	if err != nil {
		if handlers.RespondDomainError(w, err) == http.StatusInternalServerError {
			h.logger.Error("POST /staff/spaces/{id}/close - Failed to close space: space_id=%d, date=%s, error=%v",
				spaceID, date.Format(domain.DateFormat), err)
		} else {
			h.logger.Warn("POST /staff/spaces/{id}/close - Close rejected: space_id=%d, reason=%v", spaceID, err)
		}
		return
	}

	h.logger.Info("POST /staff/spaces/{id}/close - Space closed: space_id=%d, date=%s, cancelled=%d",
		spaceID, result.Date, result.CancelledCount)
	handlers.RespondJSON(w, http.StatusOK, result)
}
