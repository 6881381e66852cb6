package send_reminder

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
)

// UseCase отправка одного напоминания о визите
type UseCase struct {
	reservationRepo ReservationRepository
	notifier        Notifier
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(reservationRepo ReservationRepository, notifier Notifier, logger Logger) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		notifier:        notifier,
		logger:          logger,
	}
}

// Execute отправляет напоминание, если бронь все еще одобрена и напоминание не уходило.
// Возвращает true, если письмо отправлено. Попытка одна, без повторов.
func (uc *UseCase) Execute(ctx context.Context, id int64) (bool, error) {
	res, err := uc.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("SendReminder: reservation id=%d not found", id)
			return false, ErrNotFound
		}
		uc.logger.Error("SendReminder: failed to load reservation id=%d: %v", id, err)
		return false, fmt.Errorf("%w: load reservation: %v", ErrInternal, err)
	}

	if res.Status != domain.StatusApproved || res.ReminderSent {
		uc.logger.Info("SendReminder: skip reservation id=%d, status=%s, reminder_sent=%t",
			id, res.Status, res.ReminderSent)
		return false, nil
	}

	if err := uc.notifier.SendReminder(ctx, res); err != nil {
		uc.logger.Warn("SendReminder: reminder for reservation id=%d not sent: %v", id, err)
		return false, fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	if err := uc.reservationRepo.MarkReminderSent(ctx, id); err != nil {
		uc.logger.Error("SendReminder: reminder sent but flag not saved for reservation id=%d: %v", id, err)
		return true, fmt.Errorf("%w: mark reminder sent: %v", ErrInternal, err)
	}

	uc.logger.Info("SendReminder: reminder sent for reservation id=%d", id)
	return true, nil
}
