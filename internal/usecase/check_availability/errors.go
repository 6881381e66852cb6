package check_availability

import "errors"

var (
	// ErrInvalidParameters возвращается, когда не задана дата или количество гостей
	ErrInvalidParameters = errors.New("check_availability: date and party size are required")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_availability: internal error")
)
