package weather

import (
	"fmt"

	"github.com/m04kA/SMC-StudyRoomsService/internal/domain"
)

var (
	// ErrInvalidLatitude возвращается, когда широта вне диапазона [-90, 90]
	ErrInvalidLatitude = fmt.Errorf("%w: Latitude must be between -90 and 90", domain.ErrInvalidInput)

	// ErrInvalidLongitude возвращается, когда долгота вне диапазона [-180, 180]
	ErrInvalidLongitude = fmt.Errorf("%w: Longitude must be between -180 and 180", domain.ErrInvalidInput)

	// ErrUnavailable возвращается, когда погодный сервис не ответил
	ErrUnavailable = fmt.Errorf("weather %w", domain.ErrExternalUnavailable)
)
