package reservations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ReservationService/internal/service/actiontokens"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

// Service чтение и редактирование бронирований из админки
type Service struct {
	reservationRepo ReservationRepository
	verifier        ActionVerifier
	settings        *domain.BookingSettings
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	verifier ActionVerifier,
	settings *domain.BookingSettings,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		verifier:        verifier,
		settings:        settings,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// List страница бронирований с поиском, фильтрами и сортировкой
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.ReservationListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	list, total, err := s.reservationRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d of %d reservations, page=%d", len(list), total, req.Page)
	return models.FromDomainReservationList(list, total, req.Page, req.PerPage), nil
}

// GetByID бронирование по внутреннему ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("GetByID", id, err)
	}
	return models.FromDomainReservation(res), nil
}

// GetByCode бронирование по публичному коду
func (s *Service) GetByCode(ctx context.Context, code string) (*models.ReservationResponse, error) {
	res, err := s.reservationRepo.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByCode: reservation code=%s not found", code)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByCode: repository error for code=%s: %v", code, err)
		return nil, fmt.Errorf("%w: GetByCode - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainReservation(res), nil
}

// Update перезаписывает все поля бронирования.
// Требует токен действия edit. Смена статуса проверяется по таблице переходов,
// дата и время проверяются, только если визит переносится.
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateRequest, token string) (*models.ReservationResponse, error) {
	s.logger.Info("Update: updating reservation id=%d", id)

	if err := s.verify(ctx, token, domain.ActionEdit, id); err != nil {
		return nil, err
	}

	current, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("Update", id, err)
	}

	messages := domain.ValidateContact(req.ContactInput())

	status := current.Status
	if req.Status != "" {
		status, err = models.ToDomainStatus(req.Status)
		if err != nil {
			messages = append(messages, "Status is not valid")
		}
	}

	updated := *current
	updated.Name = strings.TrimSpace(req.Name)
	updated.Email = strings.TrimSpace(req.Email)
	updated.Phone = strings.TrimSpace(req.Phone)
	updated.SpecialRequests = req.SpecialRequests
	updated.AdminNotes = req.AdminNotes

	if s.scheduleChanged(current, req) {
		schedule, scheduleMessages := domain.ValidateSchedule(req.ScheduleInput(), s.settings, s.timeProvider.Now())
		messages = append(messages, scheduleMessages...)
		updated.Date = schedule.Date
		updated.Time = schedule.Time
		updated.PartySize = schedule.PartySize
	}

	if err := domain.NewValidationError(messages); err != nil {
		s.logger.Warn("Update: validation failed for reservation id=%d: %v", id, err)
		return nil, err
	}

	if status != current.Status {
		if !domain.CanTransition(current.Status, status) {
			s.logger.Warn("Update: transition %s -> %s not allowed for reservation id=%d", current.Status, status, id)
			return nil, ErrInvalidTransition
		}
		updated.Status = status
	}

	if err := s.reservationRepo.Update(ctx, &updated); err != nil {
		return nil, s.mapRepoError("Update", id, err)
	}

	s.logger.Info("Update: reservation id=%d updated", id)
	return models.FromDomainReservation(&updated), nil
}

// Delete удаляет бронирование. Требует токен действия delete.
func (s *Service) Delete(ctx context.Context, id int64, token string) error {
	s.logger.Info("Delete: deleting reservation id=%d", id)

	if err := s.verify(ctx, token, domain.ActionDelete, id); err != nil {
		return err
	}

	if err := s.reservationRepo.Delete(ctx, id); err != nil {
		return s.mapRepoError("Delete", id, err)
	}

	s.logger.Info("Delete: reservation id=%d deleted", id)
	return nil
}

// Stats показатели дашборда: сегодня, ожидают решения, ближайшие 7 дней
func (s *Service) Stats(ctx context.Context) (*models.StatsResponse, error) {
	today := s.settings.Today(s.timeProvider.Now())
	weekEnd := today.AddDate(0, 0, domain.DashboardWeekDays)

	stats, err := s.reservationRepo.Stats(ctx, today, weekEnd)
	if err != nil {
		s.logger.Error("Stats: repository error: %v", err)
		return nil, fmt.Errorf("%w: Stats - repository error: %v", ErrInternal, err)
	}

	return &models.StatsResponse{
		Today:    stats.Today,
		Pending:  stats.Pending,
		ThisWeek: stats.ThisWeek,
	}, nil
}

func (s *Service) scheduleChanged(current *domain.Reservation, req *models.UpdateRequest) bool {
	return req.Date != current.Date.Format(domain.DateFormat) ||
		strings.TrimSpace(req.Time) != current.Time.String() ||
		req.PartySize != current.PartySize
}

func (s *Service) verify(ctx context.Context, token string, action domain.AdminAction, id int64) error {
	if err := s.verifier.VerifyAction(ctx, token, action, id); err != nil {
		if errors.Is(err, actiontokens.ErrUnauthorized) {
			return ErrUnauthorized
		}
		s.logger.Error("verify: failed to check %s token for reservation id=%d: %v", action, id, err)
		return fmt.Errorf("%w: verify token: %v", ErrInternal, err)
	}
	return nil
}

func (s *Service) mapRepoError(op string, id int64, err error) error {
	if errors.Is(err, reservationRepo.ErrReservationNotFound) {
		s.logger.Warn("%s: reservation id=%d not found", op, id)
		return ErrReservationNotFound
	}
	s.logger.Error("%s: repository error for reservation id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
