package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound возвращается, когда сущность не найдена
	ErrNotFound = errors.New("not found")

	// ErrForbidden возвращается, когда у пользователя нет прав на операцию
	ErrForbidden = errors.New("forbidden")

	// ErrRuleViolation возвращается, когда запрос нарушает бизнес-правило (см. RuleViolationError)
	ErrRuleViolation = errors.New("rule violation")

	// ErrInvalidConfiguration возвращается при некорректной конфигурации помещения
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrInvalidRange возвращается при некорректном диапазоне дат
	ErrInvalidRange = errors.New("invalid range")

	// ErrExternalUnavailable возвращается, когда внешний сервис недоступен
	ErrExternalUnavailable = errors.New("external service unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input")
)

// RuleCode machine-readable code of a violated rule
type RuleCode string

const (
	RuleUserPenalized       RuleCode = "USER_PENALIZED"
	RuleInPast              RuleCode = "IN_PAST"
	RuleHoliday             RuleCode = "HOLIDAY"
	RuleSpaceClosedByStaff  RuleCode = "SPACE_CLOSED_BY_STAFF"
	RuleDailyQuotaExceeded  RuleCode = "DAILY_QUOTA_EXCEEDED"
	RuleInvalidTimeOrder    RuleCode = "INVALID_TIME_ORDER"
	RuleOutsideOpeningHours RuleCode = "OUTSIDE_OPENING_HOURS"
	RuleDurationExceeded    RuleCode = "DURATION_EXCEEDED"
	RuleCapacityExceeded    RuleCode = "CAPACITY_EXCEEDED"
	RuleNotCancellable      RuleCode = "NOT_CANCELLABLE"
	RuleNotConfirmable      RuleCode = "NOT_CONFIRMABLE"
	RuleNoShowNotConfirmed  RuleCode = "NO_SHOW_NOT_CONFIRMED"
	RuleNoShowInFuture      RuleCode = "NO_SHOW_IN_FUTURE"
)

// RuleViolationError carries the single rule that rejected a request
type RuleViolationError struct {
	Code    RuleCode
	Message string
}

// NewRuleViolation creates a rule violation error
func NewRuleViolation(code RuleCode, format string, v ...interface{}) *RuleViolationError {
	return &RuleViolationError{Code: code, Message: fmt.Sprintf(format, v...)}
}

func (e *RuleViolationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap makes errors.Is(err, ErrRuleViolation) true
func (e *RuleViolationError) Unwrap() error {
	return ErrRuleViolation
}

// AsRuleViolation extracts the rule violation from an error chain
func AsRuleViolation(err error) (*RuleViolationError, bool) {
	var rv *RuleViolationError
	if errors.As(err, &rv) {
		return rv, true
	}
	return nil, false
}

// IsRule reports whether err is a violation of the given rule
func IsRule(err error, code RuleCode) bool {
	rv, ok := AsRuleViolation(err)
	return ok && rv.Code == code
}
