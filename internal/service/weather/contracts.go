package weather

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudyRoomsService/internal/domain"
)

// Provider интерфейс клиента погодного API
type Provider interface {
	GetCurrentWeather(ctx context.Context, latitude, longitude float64) (*domain.Weather, error)
	GetWeatherAt(ctx context.Context, latitude, longitude float64, at time.Time) (*domain.Weather, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
