package spaces

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StudyRoomsService/internal/domain"
)

var (
	// ErrSpaceNotFound возвращается, когда помещение не найдено
	ErrSpaceNotFound = fmt.Errorf("space %w", domain.ErrNotFound)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("spaces service: internal error")
)
