package reservations

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StudyRoomsService/internal/domain"
)

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = fmt.Errorf("reservation %w", domain.ErrNotFound)

	// ErrSpaceNotFound возвращается, когда помещение не найдено
	ErrSpaceNotFound = fmt.Errorf("space %w", domain.ErrNotFound)

	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = fmt.Errorf("user %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда пользователь действует над чужим бронированием
	ErrAccessDenied = fmt.Errorf("%w: you cannot cancel another user's reservation", domain.ErrForbidden)

	// ErrViewDenied возвращается, когда пользователь запрашивает чужое бронирование или историю
	ErrViewDenied = fmt.Errorf("%w: you can only view your own reservations", domain.ErrForbidden)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("reservations service: internal error")
)
