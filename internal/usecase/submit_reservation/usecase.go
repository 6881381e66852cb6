package submit_reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// successMessage сообщение гостю после отправки формы
const successMessage = "Reservation submitted successfully! Your confirmation code is: %s. We will contact you shortly to confirm."

// UseCase use case отправки заявки на бронирование из публичной формы
type UseCase struct {
	reservationRepo ReservationRepository
	notifier        Notifier
	txManager       TransactionManager
	settings        *domain.BookingSettings
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger

	newCode      func() (string, error)
	newEditToken func() (string, error)
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	notifier Notifier,
	txManager TransactionManager,
	settings *domain.BookingSettings,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		notifier:        notifier,
		txManager:       txManager,
		settings:        settings,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
		newCode:         generateCode,
		newEditToken:    generateEditToken,
	}
}

// Execute проверяет форму, сохраняет бронь в статусе pending и отправляет письма.
// Пересчет занятости слота и вставка идут в одной сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SubmitReservation: date=%s, time=%s, party_size=%s", req.Date, req.Time, req.PartySize)

	// 1. Валидация всех полей, сообщения собираются полностью
	now := uc.timeProvider.Now()

	messages := domain.ValidateContact(domain.ContactInput{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		SpecialRequests: req.SpecialRequests,
	})
	schedule, scheduleMessages := domain.ValidateSchedule(domain.ScheduleInput{
		Date:      req.Date,
		Time:      req.Time,
		PartySize: req.PartySize,
	}, uc.settings, now)
	messages = append(messages, scheduleMessages...)

	if err := domain.NewValidationError(messages); err != nil {
		uc.logger.Warn("SubmitReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Код подтверждения и токен редактирования
	code, err := uc.uniqueValue(ctx, uc.newCode, uc.reservationRepo.ExistsByCode)
	if err != nil {
		uc.logger.Error("SubmitReservation: failed to generate reservation code: %v", err)
		return nil, fmt.Errorf("%w: generate code: %v", ErrInternal, err)
	}

	editToken, err := uc.uniqueValue(ctx, uc.newEditToken, uc.reservationRepo.ExistsByEditToken)
	if err != nil {
		uc.logger.Error("SubmitReservation: failed to generate edit token: %v", err)
		return nil, fmt.Errorf("%w: generate edit token: %v", ErrInternal, err)
	}

	reservation := &domain.Reservation{
		Code:            code,
		EditToken:       editToken,
		Name:            strings.TrimSpace(req.Name),
		Email:           strings.TrimSpace(req.Email),
		Phone:           strings.TrimSpace(req.Phone),
		Date:            schedule.Date,
		Time:            schedule.Time,
		PartySize:       schedule.PartySize,
		SpecialRequests: strings.TrimSpace(req.SpecialRequests),
		Status:          domain.StatusPending,
	}

	// 3. Пересчет занятости и вставка
	var created *domain.Reservation
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booked, err := uc.reservationRepo.SumPartySize(txCtx, schedule.Date, schedule.Time, domain.CapacityStatuses, nil)
		if err != nil {
			uc.logger.Error("SubmitReservation: failed to sum party sizes: %v", err)
			return fmt.Errorf("%w: sum party sizes: %w", ErrPersistence, err)
		}

		remaining := domain.RemainingCapacity(uc.settings.MaxReservationsPerSlot, booked)
		if schedule.PartySize > remaining {
			uc.logger.Warn("SubmitReservation: slot %s %s is full, %d/%d taken, requested %d",
				schedule.Date.Format(domain.DateFormat), schedule.Time, booked,
				uc.settings.MaxReservationsPerSlot, schedule.PartySize)
			return ErrSlotNotAvailable
		}

		created, err = uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			uc.logger.Error("SubmitReservation: failed to create reservation code=%s: %v", code, err)
			return fmt.Errorf("%w: create reservation: %w", ErrPersistence, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotNotAvailable) || errors.Is(err, ErrPersistence) {
			return nil, err
		}
		// Ошибки begin/commit, в том числе исчерпанные повторы при конфликте сериализации
		uc.logger.Error("SubmitReservation: transaction failed for code=%s: %v", code, err)
		return nil, fmt.Errorf("%w: transaction: %w", ErrPersistence, err)
	}

	uc.logger.Info("SubmitReservation: reservation id=%d code=%s created", created.ID, created.Code)
	uc.metrics.IncReservationsCreated()

	// 4. Письма гостю и администратору, ошибки только логируются
	if err := uc.notifier.SendCustomerConfirmation(ctx, created); err != nil {
		uc.logger.Warn("SubmitReservation: customer confirmation for id=%d not sent: %v", created.ID, err)
	}
	if err := uc.notifier.SendAdminNotification(ctx, created); err != nil {
		uc.logger.Warn("SubmitReservation: admin notification for id=%d not sent: %v", created.ID, err)
	}

	return &Response{
		ID:        created.ID,
		Code:      created.Code,
		Status:    string(created.Status),
		Date:      created.Date,
		Time:      created.Time,
		PartySize: created.PartySize,
		Message:   fmt.Sprintf(successMessage, created.Code),
	}, nil
}

// uniqueValue генерирует значение, пока exists не вернет false
func (uc *UseCase) uniqueValue(
	ctx context.Context,
	generate func() (string, error),
	exists func(ctx context.Context, value string) (bool, error),
) (string, error) {
	for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
		value, err := generate()
		if err != nil {
			return "", err
		}

		taken, err := exists(ctx, value)
		if err != nil {
			return "", err
		}
		if !taken {
			return value, nil
		}
	}
	return "", fmt.Errorf("no unique value after %d attempts", maxGenerateAttempts)
}
