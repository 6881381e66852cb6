package mail

import "errors"

var (
	// ErrInvalidMessage возвращается, когда у письма нет адресата
	ErrInvalidMessage = errors.New("mail: invalid message")

	// ErrSend возвращается при ошибке SMTP-сессии
	ErrSend = errors.New("mail: failed to send message")
)
