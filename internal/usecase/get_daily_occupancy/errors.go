package get_daily_occupancy

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StudyRoomsService/internal/domain"
)

var (
	// ErrSpaceNotFound возвращается, когда помещение не найдено
	ErrSpaceNotFound = fmt.Errorf("get_daily_occupancy: space %w", domain.ErrNotFound)

	// ErrEndBeforeStart возвращается, когда конец периода раньше начала
	ErrEndBeforeStart = fmt.Errorf("%w: End date cannot be before start date.", domain.ErrInvalidRange)

	// ErrRangeTooLong возвращается, когда период длиннее допустимого
	ErrRangeTooLong = fmt.Errorf("%w: range cannot exceed %d days", domain.ErrInvalidRange, domain.MaxOccupancyRangeDays)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("get_daily_occupancy: %w", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_daily_occupancy: internal error")
)
