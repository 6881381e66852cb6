package submit_reservation

import (
	"context"

	submitReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/submit_reservation"
)

type SubmitReservationUseCase interface {
	Execute(ctx context.Context, req *submitReservation.Request) (*submitReservation.Response, error)
}

// FormTokenVerifier проверка CSRF токена публичной формы
type FormTokenVerifier interface {
	VerifyFormToken(token string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
