package notificationapi

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notificationapi client: internal error")

	// ErrRejected возвращается, когда сервис уведомлений ответил ошибкой
	ErrRejected = errors.New("notificationapi client: notification rejected")
)
