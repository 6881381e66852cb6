package send_reminder

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	MarkReminderSent(ctx context.Context, id int64) error
}

// Notifier отправка письма-напоминания
type Notifier interface {
	SendReminder(ctx context.Context, res *domain.Reservation) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
