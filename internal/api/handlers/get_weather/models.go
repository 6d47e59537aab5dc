package get_weather

import (
	"time"

	"github.com/m04kA/SMC-StudyRoomsService/internal/domain"
)

// WeatherResponse HTTP response model
type WeatherResponse struct {
	TemperatureCelsius float64 `json:"temperatureCelsius"`
	WindSpeed          float64 `json:"windSpeed"`
	Precipitation      float64 `json:"precipitation"`
	WeatherCode        *int    `json:"weatherCode,omitempty"`
	Timestamp          string  `json:"timestamp"`
}

// FromDomainWeather конвертирует domain модель в HTTP response
func FromDomainWeather(w *domain.Weather) *WeatherResponse {
	return &WeatherResponse{
		TemperatureCelsius: w.TemperatureCelsius,
		WindSpeed:          w.WindSpeed,
		Precipitation:      w.Precipitation,
		WeatherCode:        w.WeatherCode,
		Timestamp:          w.Timestamp.Format(time.RFC3339),
	}
}
