package holidayapi

import "context"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Cache кэш списков праздников по (год, страна)
type Cache interface {
	Get(ctx context.Context, year int, countryCode string) ([]Holiday, bool, error)
	Set(ctx context.Context, year int, countryCode string, holidays []Holiday) error
}
