package delete_space

import (
	"net/http"

	"github.com/m04kA/SMC-StudyRoomsService/internal/api/handlers"
)

const msgInvalidSpaceID = "invalid space id"

type Handler struct {
	service SpaceService
	logger  Logger
}

func NewHandler(service SpaceService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/staff/spaces/{spaceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	spaceID, err := handlers.PathID(r, "spaceId")
	if err != nil {
		h.logger.Warn("DELETE /staff/spaces/{id} - Invalid space ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpaceID)
		return
	}

	if err := h.service.Delete(r.Context(), spaceID); err != nil {
		if handlers.RespondDomainError(w, err) == http.StatusInternalServerError {
			h.logger.Error("DELETE /staff/spaces/{id} - Failed to delete space: space_id=%d, error=%v", spaceID, err)
		} else {
			h.logger.Warn("DELETE /staff/spaces/{id} - Space not deleted: space_id=%d, reason=%v", spaceID, err)
		}
		return
	}

	h.logger.Info("DELETE /staff/spaces/{id} - Space deleted successfully: space_id=%d", spaceID)
	w.WriteHeader(http.StatusNoContent)
}
