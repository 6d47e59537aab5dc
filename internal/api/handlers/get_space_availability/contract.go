package get_space_availability

import (
	"context"

	getSpaceAvailability "github.com/m04kA/SMC-StudyRoomsService/internal/usecase/get_space_availability"
)

type GetSpaceAvailabilityUseCase interface {
	Execute(ctx context.Context, req *getSpaceAvailability.Request) (*getSpaceAvailability.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
