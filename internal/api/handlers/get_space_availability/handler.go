package get_space_availability

import (
	"net/http"

	"github.com/m04kA/SMC-StudyRoomsService/internal/api/handlers"
	getSpaceAvailability "github.com/m04kA/SMC-StudyRoomsService/internal/usecase/get_space_availability"
)

const msgInvalidSpaceID = "invalid space id"

type Handler struct {
	useCase GetSpaceAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetSpaceAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/spaces/{spaceId}/availability
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	spaceID, err := handlers.PathID(r, "spaceId")
	if err != nil {
		h.logger.Warn("GET /spaces/{id}/availability - Invalid space ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpaceID)
		return
	}

	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		h.logger.Warn("GET /spaces/{id}/availability - %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getSpaceAvailability.Request{SpaceID: spaceID, Date: date})
	if err != nil {
		if handlers.RespondDomainError(w, err) == http.StatusInternalServerError {
			h.logger.Error("GET /spaces/{id}/availability - Failed to build availability: space_id=%d, error=%v", spaceID, err)
		} else {
			h.logger.Warn("GET /spaces/{id}/availability - Rejected: space_id=%d, reason=%v", spaceID, err)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
