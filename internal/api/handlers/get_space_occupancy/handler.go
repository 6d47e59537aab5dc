package get_space_occupancy

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-StudyRoomsService/internal/api/handlers"
	"github.com/m04kA/SMC-StudyRoomsService/internal/domain"
	getDailyOccupancy "github.com/m04kA/SMC-StudyRoomsService/internal/usecase/get_daily_occupancy"
)

const (
	formatJSON = "json"
	formatXLSX = "xlsx"

	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	msgInvalidSpaceID = "invalid space id"
	msgInvalidFormat  = "format must be json or xlsx"
)

type Handler struct {
	useCase GetDailyOccupancyUseCase
	logger  Logger
}

func NewHandler(useCase GetDailyOccupancyUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/staff/spaces/{spaceId}/occupancy
// Query params: from, to (required, YYYY-MM-DD), format (json | xlsx, default json)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	spaceID, err := handlers.PathID(r, "spaceId")
	if err != nil {
		h.logger.Warn("GET /staff/spaces/{id}/occupancy - Invalid space ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpaceID)
		return
	}

	from, err := handlers.QueryDate(r, "from")
	if err != nil {
		h.logger.Warn("GET /staff/spaces/{id}/occupancy - %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}
	to, err := handlers.QueryDate(r, "to")
	if err != nil {
		h.logger.Warn("GET /staff/spaces/{id}/occupancy - %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = formatJSON
	}
	if format != formatJSON && format != formatXLSX {
		h.logger.Warn("GET /staff/spaces/{id}/occupancy - Invalid format: %q", format)
		handlers.RespondBadRequest(w, msgInvalidFormat)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getDailyOccupancy.Request{
		SpaceID:   spaceID,
		StartDate: from,
		EndDate:   to,
	})
	if err != nil {
		if handlers.RespondDomainError(w, err) == http.StatusInternalServerError {
			h.logger.Error("GET /staff/spaces/{id}/occupancy - Failed to aggregate occupancy: space_id=%d, error=%v", spaceID, err)
		} else {
			h.logger.Warn("GET /staff/spaces/{id}/occupancy - Rejected: space_id=%d, reason=%v", spaceID, err)
		}
		return
	}

	if format == formatJSON {
		handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
		return
	}

	// Собираем файл целиком, чтобы при ошибке вернуть 500 вместо обрезанного ответа
	var buf bytes.Buffer
	if err := getDailyOccupancy.WriteXLSX(&buf, result); err != nil {
		h.logger.Error("GET /staff/spaces/{id}/occupancy - Failed to build xlsx: space_id=%d, error=%v", spaceID, err)
		handlers.RespondInternalError(w)
		return
	}

	filename := fmt.Sprintf("occupancy_%d_%s_%s.xlsx", spaceID,
		from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	w.Header().Set("Content-Type", contentTypeXLSX)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("GET /staff/spaces/{id}/occupancy - Failed to write xlsx: %v", err)
		return
	}

	h.logger.Info("GET /staff/spaces/{id}/occupancy - Exported xlsx: space_id=%d, days=%d", spaceID, len(result.Entries))
}
