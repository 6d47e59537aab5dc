package get_weather

import (
	"fmt"
	"net/http"
	"time"

	"github.com/m04kA/SMC-StudyRoomsService/internal/api/handlers"
)

// Форматы параметра at: полный RFC3339 или локальное время без зоны (считается UTC)
var atLayouts = []string{time.RFC3339, "2006-01-02T15:04"}

type Handler struct {
	service WeatherService
	logger  Logger
}

func NewHandler(service WeatherService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/weather
// Query params: lat, lon (required), at (optional, погода на указанный час)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	lat, err := handlers.QueryFloat(r, "lat")
	if err != nil {
		h.logger.Warn("GET /weather - %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}
	lon, err := handlers.QueryFloat(r, "lon")
	if err != nil {
		h.logger.Warn("GET /weather - %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	at, err := parseAt(r.URL.Query().Get("at"))
	if err != nil {
		h.logger.Warn("GET /weather - %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	weather, err := h.service.GetWeather(r.Context(), lat, lon, at)
	if err != nil {
		status := handlers.RespondDomainError(w, err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("GET /weather - Failed to get weather: lat=%.4f, lon=%.4f, error=%v", lat, lon, err)
		} else {
			h.logger.Warn("GET /weather - Rejected: lat=%.4f, lon=%.4f, reason=%v", lat, lon, err)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainWeather(weather))
}

func parseAt(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	for _, layout := range atLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid query parameter at=%q, expected RFC3339", raw)
}
