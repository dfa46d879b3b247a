package notifyservice

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notifyservice client: internal error")

	// ErrDeliveryFailed возвращается, когда сервис уведомлений отклонил отправку
	ErrDeliveryFailed = errors.New("notifyservice client: delivery failed")
)
