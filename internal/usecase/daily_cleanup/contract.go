package daily_cleanup

import (
	"context"
	"time"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	ListReminderCandidates(ctx context.Context, date time.Time) ([]int64, error)
	DeleteCancelledBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// ActionTokenRepository использованные токены действий
type ActionTokenRepository interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// ReminderScheduler постановка напоминания в очередь, не блокирует
type ReminderScheduler interface {
	ScheduleReminder(id int64) bool
}

type Metrics interface {
	AddCleanupDeleted(n int)
	AddRemindersScheduled(n int)
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
