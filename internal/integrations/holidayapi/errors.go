package holidayapi

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("holidayapi client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("holidayapi client: invalid response")

	// ErrUnknownCountry возвращается, когда сервис не знает код страны
	ErrUnknownCountry = errors.New("holidayapi client: unknown country code")
)
