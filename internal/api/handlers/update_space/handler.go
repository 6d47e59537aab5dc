package update_space

import (
	"net/http"

	"github.com/m04kA/SMC-StudyRoomsService/internal/api/handlers"
	"github.com/m04kA/SMC-StudyRoomsService/internal/service/spaces/models"
)

const (
	msgInvalidSpaceID     = "invalid space id"
	msgInvalidRequestBody = "invalid request body"
)

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

// Handle PUT /api/v1/staff/spaces/{spaceId}
// Поля тела необязательны, обновляются только переданные.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	spaceID, err := handlers.PathID(r, "spaceId")
	if err != nil {
		h.logger.Warn("PUT /staff/spaces/{id} - Invalid space ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpaceID)
		return
	}

	var req models.UpdateSpaceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /staff/spaces/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	space, err := h.service.Update(r.Context(), spaceID, &req)
	if err != nil {
		if handlers.RespondDomainError(w, err) == http.StatusInternalServerError {
			h.logger.Error("PUT /staff/spaces/{id} - Failed to update space: space_id=%d, error=%v", spaceID, err)
		} else {
			h.logger.Warn("PUT /staff/spaces/{id} - Space not updated: space_id=%d, reason=%v", spaceID, err)
		}
		return
	}

	h.logger.Info("PUT /staff/spaces/{id} - Space updated successfully: space_id=%d", spaceID)
	handlers.RespondJSON(w, http.StatusOK, space)
}
