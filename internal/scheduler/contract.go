package scheduler

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/usecase/daily_cleanup"
)

// ReminderSender отправка одного напоминания
type ReminderSender interface {
	Execute(ctx context.Context, id int64) (bool, error)
}

// CleanupJob ежедневная задача обслуживания
type CleanupJob interface {
	Execute(ctx context.Context) (*daily_cleanup.Result, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
