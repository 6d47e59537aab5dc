package create_space

import (
	"net/http"

	"github.com/m04kA/SMC-StudyRoomsService/internal/api/handlers"
	"github.com/m04kA/SMC-StudyRoomsService/internal/service/spaces/models"
)

const msgInvalidRequestBody = "invalid request body"

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

// Handle POST /api/v1/staff/spaces
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSpaceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /staff/spaces - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	space, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if handlers.RespondDomainError(w, err) == http.StatusInternalServerError {
			h.logger.Error("POST /staff/spaces - Failed to create space: name=%q, error=%v", req.Name, err)
		} else {
			h.logger.Warn("POST /staff/spaces - Invalid space: name=%q, reason=%v", req.Name, err)
		}
		return
	}

	h.logger.Info("POST /staff/spaces - Space created successfully: space_id=%d", space.ID)
	handlers.RespondJSON(w, http.StatusCreated, space)
}
