package submit_reservation

import "errors"

var (
	// ErrSlotNotAvailable возвращается, когда в слоте не хватает мест
	ErrSlotNotAvailable = errors.New("submit_reservation: slot is not available")

	// ErrPersistence возвращается, когда не удалось сохранить бронирование
	ErrPersistence = errors.New("submit_reservation: failed to save reservation")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("submit_reservation: internal error")
)
