package submit_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	ExistsByEditToken(ctx context.Context, token string) (bool, error)
	SumPartySize(ctx context.Context, date time.Time, slot types.TimeString, statuses []domain.ReservationStatus, excludeID *int64) (int, error)
}

// Notifier уведомления о новой заявке
type Notifier interface {
	SendCustomerConfirmation(ctx context.Context, res *domain.Reservation) error
	SendAdminNotification(ctx context.Context, res *domain.Reservation) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

type Metrics interface {
	IncReservationsCreated()
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
