package mark_no_show

import (
	"net/http"

	"github.com/m04kA/SMC-StudyRoomsService/internal/api/handlers"
)

const msgInvalidReservationID = "invalid reservation id"

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

// Handle PATCH /api/v1/staff/reservations/{reservationId}/no-show
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID, err := handlers.PathID(r, "reservationId")
	if err != nil {
		h.logger.Warn("PATCH /staff/reservations/{id}/no-show - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	reservation, err := h.service.MarkNoShow(r.Context(), reservationID)
	if err != nil {
		if handlers.RespondDomainError(w, err) == http.StatusInternalServerError {
			h.logger.Error("PATCH /staff/reservations/{id}/no-show - Failed to mark no-show: reservation_id=%d, error=%v",
				reservationID, err)
		} else {
			h.logger.Warn("PATCH /staff/reservations/{id}/no-show - Rejected: reservation_id=%d, reason=%v",
				reservationID, err)
		}
		return
	}

	h.logger.Info("PATCH /staff/reservations/{id}/no-show - Reservation marked as no-show: reservation_id=%d, user_id=%d",
		reservationID, reservation.UserID)
	handlers.RespondJSON(w, http.StatusOK, reservation)
}
