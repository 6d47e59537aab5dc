package get_space_occupancy

import (
	"context"

	getDailyOccupancy "github.com/m04kA/SMC-StudyRoomsService/internal/usecase/get_daily_occupancy"
)

type GetDailyOccupancyUseCase interface {
	Execute(ctx context.Context, req *getDailyOccupancy.Request) (*getDailyOccupancy.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
