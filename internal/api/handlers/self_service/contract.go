package self_service

import (
	"context"

	selfService "github.com/m04kA/SMC-ReservationService/internal/usecase/self_service"
)

type SelfServiceUseCase interface {
	Get(ctx context.Context, token string) (*selfService.View, error)
	Cancel(ctx context.Context, token string) (*selfService.CancelResult, error)
	Edit(ctx context.Context, req *selfService.EditRequest) (*selfService.View, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
