package create_reservation

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudyRoomsService/internal/domain"
)

// validateRequest валидирует формат входных данных.
// Порядок времени и остальные правила проверяются конвейером Execute.
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.SpaceID <= 0 {
		return fmt.Errorf("%w: spaceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}

	return nil
}

// checkUserNotPenalized правило 2: штраф действует по penaltyUntil включительно
func checkUserNotPenalized(user *domain.User, now time.Time) error {
	if user.IsPenalized(now) {
		return domain.NewRuleViolation(domain.RuleUserPenalized,
			"You are blocked from making reservations until %s.", user.PenaltyUntil.Format(domain.DateFormat))
	}
	return nil
}

// checkNotInPast правило 3
func checkNotInPast(req *Request, now time.Time) error {
	today := domain.DateOf(now)
	if req.Date.Before(today) {
		return domain.NewRuleViolation(domain.RuleInPast, "You cannot reserve in the past.")
	}
	if domain.IsBeforeNow(req.Date, req.StartTime, now) {
		return domain.NewRuleViolation(domain.RuleInPast, "This start time has already passed for today.")
	}
	return nil
}

// checkTimeOrder правило 7
func checkTimeOrder(req *Request) error {
	if !req.EndTime.IsAfter(req.StartTime) {
		return domain.NewRuleViolation(domain.RuleInvalidTimeOrder, "End time must be after start time.")
	}
	return nil
}

// checkOpeningHours правило 8, для круглосуточных помещений не применяется
func checkOpeningHours(space *domain.Space, req *Request) error {
	if !space.IsWithinHours(req.StartTime, req.EndTime) {
		return domain.NewRuleViolation(domain.RuleOutsideOpeningHours,
			"Reservation time outside study space opening hours (%s to %s).", space.OpenTime, space.CloseTime)
	}
	return nil
}

// checkDuration правило 9
func checkDuration(req *Request, maxMinutes int) error {
	if domain.DurationMinutes(req.StartTime, req.EndTime) > maxMinutes {
		return domain.NewRuleViolation(domain.RuleDurationExceeded,
			"Maximum duration per reservation is %s.", formatLimit(maxMinutes))
	}
	return nil
}

func formatLimit(minutes int) string {
	switch {
	case minutes == 60:
		return "1 hour"
	case minutes%60 == 0:
		return fmt.Sprintf("%d hours", minutes/60)
	default:
		return fmt.Sprintf("%d minutes", minutes)
	}
}
