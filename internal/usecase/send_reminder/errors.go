package send_reminder

import "errors"

var (
	// ErrNotFound возвращается, когда бронь удалили до отправки напоминания
	ErrNotFound = errors.New("send_reminder: reservation not found")

	// ErrDeliveryFailed возвращается, когда письмо не ушло
	ErrDeliveryFailed = errors.New("send_reminder: reminder was not delivered")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("send_reminder: internal error")
)
