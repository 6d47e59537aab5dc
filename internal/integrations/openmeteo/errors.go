package openmeteo

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("openmeteo client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("openmeteo client: invalid response")

	// ErrNoData возвращается, когда в ответе нет данных на запрошенное время
	ErrNoData = errors.New("openmeteo client: no weather data")
)
