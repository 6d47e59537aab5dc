package get_weather

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudyRoomsService/internal/domain"
)

type WeatherService interface {
	GetWeather(ctx context.Context, latitude, longitude float64, at *time.Time) (*domain.Weather, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
