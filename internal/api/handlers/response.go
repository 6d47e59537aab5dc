package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/SMC-StudyRoomsService/internal/domain"
)

const (
	msgInternalError   = "internal server error"
	msgTooManyRequests = "too many requests"

	maxBodyBytes = 1 << 20
)

// ErrorResponse тело ответа с ошибкой. Code заполняется для нарушений бизнес-правил.
type ErrorResponse struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// DecodeJSON декодирует тело запроса в dst, неизвестные поля запрещены
func DecodeJSON(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

// RespondJSON пишет payload в JSON с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondError пишет ошибку с сообщением
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Message: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondTooManyRequests(w http.ResponseWriter) {
	RespondError(w, http.StatusTooManyRequests, msgTooManyRequests)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// StatusFromError сопоставляет ошибку доменной таксономии с HTTP статусом.
// Отказ по вместимости - 409, остальные нарушения правил - 422.
func StatusFromError(err error) int {
	if rv, ok := domain.AsRuleViolation(err); ok {
		if rv.Code == domain.RuleCapacityExceeded {
			return http.StatusConflict
		}
		return http.StatusUnprocessableEntity
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrInvalidConfiguration),
		errors.Is(err, domain.ErrInvalidRange),
		errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrExternalUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// RespondDomainError пишет ответ для ошибки сервиса или use case.
// Текст внутренних ошибок клиенту не отдаётся.
func RespondDomainError(w http.ResponseWriter, err error) int {
	status := StatusFromError(err)

	if rv, ok := domain.AsRuleViolation(err); ok {
		RespondJSON(w, status, ErrorResponse{Code: string(rv.Code), Message: rv.Message})
		return status
	}

	if status == http.StatusInternalServerError {
		RespondInternalError(w)
		return status
	}

	RespondError(w, status, err.Error())
	return status
}
