package transition_status

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ReservationService/internal/service/actiontokens"
)

// Сообщения для результатов массового действия
const (
	itemNotFound          = "Reservation not found"
	itemInvalidTransition = "Status transition is not allowed"
	itemInternal          = "Internal server error"
)

// UseCase use case смены статуса брони администратором.
// Уведомления гостю при смене статуса не отправляются.
type UseCase struct {
	reservationRepo ReservationRepository
	verifier        ActionVerifier
	txManager       TransactionManager
	metrics         Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	verifier ActionVerifier,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		verifier:        verifier,
		txManager:       txManager,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute переводит бронь в новый статус.
// Повторный перевод в тот же статус ничего не записывает и возвращает Changed=false.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("TransitionStatus: reservation id=%d, status=%s", req.ID, req.Status)

	// 1. Целевой статус и соответствующее действие
	status := domain.ReservationStatus(strings.ToLower(strings.TrimSpace(req.Status)))
	action, ok := domain.ActionForStatus(status)
	if !ok {
		uc.logger.Warn("TransitionStatus: invalid target status=%s for reservation id=%d", req.Status, req.ID)
		return nil, ErrInvalidStatus
	}

	// 2. Токен действия
	if err := uc.verifier.VerifyAction(ctx, req.Token, action, req.ID); err != nil {
		if errors.Is(err, actiontokens.ErrUnauthorized) {
			uc.logger.Warn("TransitionStatus: unauthorized %s for reservation id=%d", action, req.ID)
			return nil, ErrUnauthorized
		}
		uc.logger.Error("TransitionStatus: failed to verify token for reservation id=%d: %v", req.ID, err)
		return nil, fmt.Errorf("%w: verify token: %v", ErrInternal, err)
	}

	// 3-5. Поиск, проверка перехода, запись
	return uc.apply(ctx, req.ID, status)
}

// ExecuteBulk применяет одно действие к списку броней по bulk-токену.
// Ошибка по одной брони не останавливает обработку остальных.
func (uc *UseCase) ExecuteBulk(ctx context.Context, req *BulkRequest) (*BulkResponse, error) {
	uc.logger.Info("TransitionStatus: bulk action=%s for %d reservations", req.Action, len(req.IDs))

	action := domain.AdminAction(strings.ToLower(strings.TrimSpace(req.Action)))
	status, isStatus := domain.StatusForAction(action)
	if !isStatus && action != domain.ActionDelete {
		uc.logger.Warn("TransitionStatus: unsupported bulk action=%s", req.Action)
		return nil, ErrInvalidAction
	}

	if !uc.verifier.IsBulkToken(req.Token, action) {
		uc.logger.Warn("TransitionStatus: invalid bulk token for action=%s", action)
		return nil, ErrUnauthorized
	}

	result := &BulkResponse{
		Action: string(action),
		Items:  make([]BulkItem, 0, len(req.IDs)),
	}

	for _, id := range req.IDs {
		item := BulkItem{ID: id}

		var err error
		if isStatus {
			var resp *Response
			resp, err = uc.apply(ctx, id, status)
			if err == nil {
				item.Status = resp.Status
				item.Changed = resp.Changed
			}
		} else {
			err = uc.delete(ctx, id)
			item.Changed = err == nil
		}

		if err != nil {
			item.Error = itemMessage(err)
			result.Failed++
		} else {
			result.Succeeded++
		}
		result.Items = append(result.Items, item)
	}

	uc.logger.Info("TransitionStatus: bulk action=%s done, succeeded=%d failed=%d",
		action, result.Succeeded, result.Failed)
	return result, nil
}

func (uc *UseCase) apply(ctx context.Context, id int64, status domain.ReservationStatus) (*Response, error) {
	var resp *Response

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := uc.reservationRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				uc.logger.Warn("TransitionStatus: reservation id=%d not found", id)
				return ErrNotFound
			}
			uc.logger.Error("TransitionStatus: failed to load reservation id=%d: %v", id, err)
			return fmt.Errorf("%w: load reservation: %v", ErrInternal, err)
		}

		resp = &Response{
			ID:             id,
			Status:         string(status),
			PreviousStatus: string(current.Status),
		}

		if current.Status == status {
			uc.logger.Info("TransitionStatus: reservation id=%d already %s", id, status)
			return nil
		}

		if !domain.CanTransition(current.Status, status) {
			uc.logger.Warn("TransitionStatus: transition %s -> %s not allowed for reservation id=%d",
				current.Status, status, id)
			return ErrInvalidTransition
		}

		if err := uc.reservationRepo.UpdateStatus(txCtx, id, status); err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrNotFound
			}
			uc.logger.Error("TransitionStatus: failed to update reservation id=%d: %v", id, err)
			return fmt.Errorf("%w: update status: %v", ErrInternal, err)
		}

		resp.Changed = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if resp.Changed {
		uc.metrics.IncStatusTransition(resp.Status)
		uc.logger.Info("TransitionStatus: reservation id=%d %s -> %s", id, resp.PreviousStatus, resp.Status)
	}
	return resp, nil
}

func (uc *UseCase) delete(ctx context.Context, id int64) error {
	if err := uc.reservationRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return ErrNotFound
		}
		uc.logger.Error("TransitionStatus: failed to delete reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: delete: %v", ErrInternal, err)
	}
	uc.logger.Info("TransitionStatus: reservation id=%d deleted", id)
	return nil
}

func itemMessage(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return itemNotFound
	case errors.Is(err, ErrInvalidTransition):
		return itemInvalidTransition
	default:
		return itemInternal
	}
}
