package get_space_reservations

import (
	"net/http"

	"github.com/m04kA/SMC-StudyRoomsService/internal/api/handlers"
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

// Handle GET /api/v1/staff/spaces/{spaceId}/reservations
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	spaceID, err := handlers.PathID(r, "spaceId")
	if err != nil {
		h.logger.Warn("GET /staff/spaces/{id}/reservations - Invalid space ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpaceID)
		return
	}

	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		h.logger.Warn("GET /staff/spaces/{id}/reservations - %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.service.ListForSpaceAndDate(r.Context(), spaceID, date)
	if err != nil {
		if handlers.RespondDomainError(w, err) == http.StatusInternalServerError {
			h.logger.Error("GET /staff/spaces/{id}/reservations - Failed to list reservations: space_id=%d, error=%v", spaceID, err)
		} else {
			h.logger.Warn("GET /staff/spaces/{id}/reservations - List rejected: space_id=%d, reason=%v", spaceID, err)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
