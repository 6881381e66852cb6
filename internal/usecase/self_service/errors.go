package self_service

import "errors"

var (
	// ErrNotFound возвращается, когда токен не соответствует ни одной брони
	ErrNotFound = errors.New("self_service: reservation not found")

	// ErrEditWindowExpired возвращается, когда до визита осталось меньше окна редактирования
	ErrEditWindowExpired = errors.New("self_service: edit window has expired")

	// ErrInvalidTransition возвращается, когда бронь в конечном статусе
	ErrInvalidTransition = errors.New("self_service: reservation can no longer be changed")

	// ErrSlotNotAvailable возвращается, когда в новом слоте не хватает мест
	ErrSlotNotAvailable = errors.New("self_service: slot is not available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("self_service: internal error")
)
