package openmeteo

// timeLayout формат времени Open-Meteo при timezone=UTC
const timeLayout = "2006-01-02T15:04"

const variables = "temperature_2m,wind_speed_10m,precipitation,weather_code"

type currentResponse struct {
	Current *currentData `json:"current"`
}

type currentData struct {
	Time          string  `json:"time"`
	Temperature2m float64 `json:"temperature_2m"`
	WindSpeed10m  float64 `json:"wind_speed_10m"`
	Precipitation float64 `json:"precipitation"`
	WeatherCode   *int    `json:"weather_code"`
}

type hourlyResponse struct {
	Hourly *hourlyData `json:"hourly"`
}

type hourlyData struct {
	Time          []string  `json:"time"`
	Temperature2m []float64 `json:"temperature_2m"`
	WindSpeed10m  []float64 `json:"wind_speed_10m"`
	Precipitation []float64 `json:"precipitation"`
	WeatherCode   []*int    `json:"weather_code"`
}
