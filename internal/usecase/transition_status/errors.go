package transition_status

import "errors"

var (
	// ErrInvalidStatus возвращается для статуса, в который нельзя перевести вручную
	ErrInvalidStatus = errors.New("transition_status: target status must be approved, declined or cancelled")

	// ErrInvalidAction возвращается для неизвестного массового действия
	ErrInvalidAction = errors.New("transition_status: unsupported bulk action")

	// ErrUnauthorized возвращается при отсутствии или неверном токене действия
	ErrUnauthorized = errors.New("transition_status: action token is missing or invalid")

	// ErrNotFound возвращается, когда бронирование не найдено
	ErrNotFound = errors.New("transition_status: reservation not found")

	// ErrInvalidTransition возвращается при переходе, запрещенном таблицей статусов
	ErrInvalidTransition = errors.New("transition_status: status transition is not allowed")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("transition_status: internal error")
)
