package domain

import "time"

// Weather weather conditions at a point in time
type Weather struct {
	TemperatureCelsius float64
	WindSpeed          float64 // km/h
	Precipitation      float64 // mm
	WeatherCode        *int    // WMO code
	Timestamp          time.Time
}
