package daily_cleanup

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// UseCase ежедневное обслуживание: напоминания на сегодня и удаление старых отмен
type UseCase struct {
	reservationRepo ReservationRepository
	tokenRepo       ActionTokenRepository
	reminders       ReminderScheduler
	settings        *domain.BookingSettings
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	tokenRepo ActionTokenRepository,
	reminders ReminderScheduler,
	settings *domain.BookingSettings,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		tokenRepo:       tokenRepo,
		reminders:       reminders,
		settings:        settings,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет все шаги, даже если какой-то из них завершился ошибкой.
// Удаление отмененных броней необратимо.
func (uc *UseCase) Execute(ctx context.Context) (*Result, error) {
	now := uc.timeProvider.Now()
	today := uc.settings.Today(now)
	result := &Result{}

	var errs []error

	// 1. Напоминания на сегодня
	ids, err := uc.reservationRepo.ListReminderCandidates(ctx, today)
	if err != nil {
		uc.logger.Error("DailyCleanup: failed to list reminder candidates for %s: %v", today.Format(domain.DateFormat), err)
		errs = append(errs, fmt.Errorf("%w: %v", ErrReminders, err))
	}
	for _, id := range ids {
		if uc.reminders.ScheduleReminder(id) {
			result.RemindersScheduled++
		} else {
			result.RemindersDropped++
		}
	}
	uc.metrics.AddRemindersScheduled(result.RemindersScheduled)

	// 2. Отмененные брони старше срока хранения
	cutoff := domain.CleanupCutoff(now)
	deleted, err := uc.reservationRepo.DeleteCancelledBefore(ctx, cutoff)
	if err != nil {
		uc.logger.Error("DailyCleanup: failed to delete cancelled reservations before %s: %v", cutoff.Format(domain.DateFormat), err)
		errs = append(errs, fmt.Errorf("%w: %v", ErrCleanup, err))
	}
	result.ReservationsDeleted = deleted
	uc.metrics.AddCleanupDeleted(int(deleted))

	// 3. Истекшие одноразовые токены
	purged, err := uc.tokenRepo.DeleteExpired(ctx, now)
	if err != nil {
		uc.logger.Error("DailyCleanup: failed to purge expired action tokens: %v", err)
		errs = append(errs, fmt.Errorf("%w: %v", ErrTokens, err))
	}
	result.TokensPurged = purged

	uc.logger.Info("DailyCleanup: reminders scheduled=%d dropped=%d, reservations deleted=%d, tokens purged=%d",
		result.RemindersScheduled, result.RemindersDropped, result.ReservationsDeleted, result.TokensPurged)

	return result, errors.Join(errs...)
}
