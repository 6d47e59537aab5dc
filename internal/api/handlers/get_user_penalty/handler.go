package get_user_penalty

import (
	"net/http"

	"github.com/m04kA/SMC-StudyRoomsService/internal/api/handlers"
	"github.com/m04kA/SMC-StudyRoomsService/internal/api/middleware"
)

const (
	msgInvalidUserID = "invalid user id"
	msgMissingUserID = "missing user id"
)

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

// Handle GET /api/v1/users/{userId}/penalty
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.PathID(r, "userId")
	if err != nil {
		h.logger.Warn("GET /users/{id}/penalty - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	actingUserID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /users/{id}/penalty - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.GetPenalty(r.Context(), userID, actingUserID, middleware.IsStaff(r.Context()))
	if err != nil {
		if handlers.RespondDomainError(w, err) == http.StatusInternalServerError {
			h.logger.Error("GET /users/{id}/penalty - Failed to get penalty: user_id=%d, error=%v", userID, err)
		} else {
			h.logger.Warn("GET /users/{id}/penalty - Penalty not returned: user_id=%d, reason=%v", userID, err)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
