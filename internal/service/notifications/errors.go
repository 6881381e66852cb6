package notifications

import "errors"

var (
	// ErrTemplateNotFound шаблон отсутствует или выключен, письмо не отправляется
	ErrTemplateNotFound = errors.New("notifications: template not found or inactive")

	// ErrNoRecipient не задан адрес получателя
	ErrNoRecipient = errors.New("notifications: recipient is empty")

	// ErrDeliveryFailed почтовый транспорт не смог отправить письмо
	ErrDeliveryFailed = errors.New("notifications: delivery failed")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("notifications: internal error")
)
