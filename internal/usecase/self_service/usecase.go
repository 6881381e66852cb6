package self_service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
)

// UseCase управление бронью гостем по токену из письма, без авторизации
type UseCase struct {
	reservationRepo ReservationRepository
	txManager       TransactionManager
	settings        *domain.BookingSettings
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	settings *domain.BookingSettings,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		txManager:       txManager,
		settings:        settings,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Get бронь по токену редактирования
func (uc *UseCase) Get(ctx context.Context, token string) (*View, error) {
	res, err := uc.load(ctx, "Get", token)
	if err != nil {
		return nil, err
	}
	return uc.view(res), nil
}

// Cancel отменяет бронь.
// Уже отмененная бронь возвращается без изменений, отклоненную отменить нельзя.
func (uc *UseCase) Cancel(ctx context.Context, token string) (*CancelResult, error) {
	var result *CancelResult

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		res, err := uc.load(txCtx, "Cancel", token)
		if err != nil {
			return err
		}

		result = &CancelResult{Code: res.Code, Status: string(domain.StatusCancelled)}

		if res.Status == domain.StatusCancelled {
			uc.logger.Info("SelfService.Cancel: reservation id=%d already cancelled", res.ID)
			return nil
		}
		if !domain.CanTransition(res.Status, domain.StatusCancelled) {
			uc.logger.Warn("SelfService.Cancel: reservation id=%d is %s", res.ID, res.Status)
			return ErrInvalidTransition
		}
		if err := uc.checkWindow("Cancel", res); err != nil {
			return err
		}

		if err := uc.reservationRepo.UpdateStatus(txCtx, res.ID, domain.StatusCancelled); err != nil {
			uc.logger.Error("SelfService.Cancel: failed to cancel reservation id=%d: %v", res.ID, err)
			return fmt.Errorf("%w: update status: %w", ErrInternal, err)
		}

		result.Changed = true
		uc.logger.Info("SelfService.Cancel: reservation id=%d cancelled by guest", res.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Changed {
		uc.metrics.IncStatusTransition(result.Status)
	}
	return result, nil
}

// Edit переносит бронь на другую дату, время или количество гостей.
// Свободные места в новом слоте проверяются без учета самой брони.
func (uc *UseCase) Edit(ctx context.Context, req *EditRequest) (*View, error) {
	var updated *domain.Reservation

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		res, err := uc.load(txCtx, "Edit", req.Token)
		if err != nil {
			return err
		}

		if !res.IsActive() {
			uc.logger.Warn("SelfService.Edit: reservation id=%d is %s", res.ID, res.Status)
			return ErrInvalidTransition
		}
		if err := uc.checkWindow("Edit", res); err != nil {
			return err
		}

		messages := domain.ValidateContact(domain.ContactInput{
			Name:            res.Name,
			Email:           res.Email,
			SpecialRequests: req.SpecialRequests,
		})
		schedule, scheduleMessages := domain.ValidateSchedule(domain.ScheduleInput{
			Date:      req.Date,
			Time:      req.Time,
			PartySize: req.PartySize,
		}, uc.settings, uc.timeProvider.Now())
		messages = append(messages, scheduleMessages...)
		if err := domain.NewValidationError(messages); err != nil {
			uc.logger.Warn("SelfService.Edit: validation failed for reservation id=%d: %v", res.ID, err)
			return err
		}

		booked, err := uc.reservationRepo.SumPartySize(txCtx, schedule.Date, schedule.Time, domain.CapacityStatuses, &res.ID)
		if err != nil {
			uc.logger.Error("SelfService.Edit: failed to sum party sizes: %v", err)
			return fmt.Errorf("%w: sum party sizes: %w", ErrInternal, err)
		}
		if schedule.PartySize > domain.RemainingCapacity(uc.settings.MaxReservationsPerSlot, booked) {
			uc.logger.Warn("SelfService.Edit: slot %s %s is full for reservation id=%d",
				schedule.Date.Format(domain.DateFormat), schedule.Time, res.ID)
			return ErrSlotNotAvailable
		}

		specialRequests := strings.TrimSpace(req.SpecialRequests)
		if err := uc.reservationRepo.UpdateSchedule(txCtx, res.ID, schedule, specialRequests); err != nil {
			uc.logger.Error("SelfService.Edit: failed to update reservation id=%d: %v", res.ID, err)
			return fmt.Errorf("%w: update schedule: %w", ErrInternal, err)
		}

		res.Date = schedule.Date
		res.Time = schedule.Time
		res.PartySize = schedule.PartySize
		res.SpecialRequests = specialRequests
		updated = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("SelfService.Edit: reservation id=%d moved to %s %s, party_size=%d",
		updated.ID, updated.Date.Format(domain.DateFormat), updated.Time, updated.PartySize)
	return uc.view(updated), nil
}

func (uc *UseCase) load(ctx context.Context, op, token string) (*domain.Reservation, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrNotFound
	}

	res, err := uc.reservationRepo.GetByEditToken(ctx, token)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("SelfService.%s: unknown edit token", op)
			return nil, ErrNotFound
		}
		uc.logger.Error("SelfService.%s: failed to load reservation: %v", op, err)
		return nil, fmt.Errorf("%w: load reservation: %w", ErrInternal, err)
	}
	return res, nil
}

func (uc *UseCase) checkWindow(op string, res *domain.Reservation) error {
	if res.CanSelfServiceModify(uc.timeProvider.Now(), uc.settings.EditWindowHours, uc.settings.Location) {
		return nil
	}
	uc.logger.Warn("SelfService.%s: edit window expired for reservation id=%d", op, res.ID)
	return ErrEditWindowExpired
}

func (uc *UseCase) view(res *domain.Reservation) *View {
	v := &View{
		Code:            res.Code,
		Name:            res.Name,
		Email:           res.Email,
		Phone:           res.Phone,
		Date:            res.Date,
		Time:            res.Time,
		TimeLabel:       res.Time.Label(),
		PartySize:       res.PartySize,
		SpecialRequests: res.SpecialRequests,
		Status:          string(res.Status),
	}

	if scheduled, err := res.ScheduledAt(uc.settings.Location); err == nil {
		v.ModifyDeadline = scheduled.Add(-time.Duration(uc.settings.EditWindowHours) * time.Hour)
	}
	v.CanModify = res.IsActive() &&
		res.CanSelfServiceModify(uc.timeProvider.Now(), uc.settings.EditWindowHours, uc.settings.Location)
	return v
}
