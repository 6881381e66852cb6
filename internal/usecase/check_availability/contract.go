package check_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	// SumPartySizeBySlot суммы гостей по слотам даты для указанных статусов
	SumPartySizeBySlot(ctx context.Context, date time.Time, statuses []domain.ReservationStatus) (map[types.TimeString]int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
