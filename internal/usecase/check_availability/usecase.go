package check_availability

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// UseCase use case проверки доступных слотов на дату
type UseCase struct {
	reservationRepo ReservationRepository
	settings        *domain.BookingSettings
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(reservationRepo ReservationRepository, settings *domain.BookingSettings, logger Logger) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		settings:        settings,
		logger:          logger,
	}
}

// Execute возвращает слоты, в которых осталось не меньше PartySize мест.
// Окно бронирования здесь не проверяется, это делается при отправке заявки.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.Date.IsZero() || req.PartySize <= 0 {
		uc.logger.Warn("CheckAvailability: invalid parameters date=%v party_size=%d", req.Date, req.PartySize)
		return nil, ErrInvalidParameters
	}

	uc.logger.Info("CheckAvailability: date=%s, party_size=%d", req.Date.Format(domain.DateFormat), req.PartySize)

	booked, err := uc.reservationRepo.SumPartySizeBySlot(ctx, req.Date, domain.CapacityStatuses)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to sum booked party sizes for %s: %v",
			req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: sum party sizes: %v", ErrInternal, err)
	}

	slots := make([]Slot, 0, len(uc.settings.TimeSlots))
	for _, slot := range uc.settings.TimeSlots {
		remaining := domain.RemainingCapacity(uc.settings.MaxReservationsPerSlot, booked[slot.Key])
		if remaining < req.PartySize {
			continue
		}
		slots = append(slots, Slot{
			Key:       slot.Key,
			Label:     slot.Label,
			Remaining: remaining,
		})
	}

	uc.logger.Info("CheckAvailability: %d of %d slots available on %s",
		len(slots), len(uc.settings.TimeSlots), req.Date.Format(domain.DateFormat))

	return &Response{
		Date:      req.Date,
		PartySize: req.PartySize,
		Slots:     slots,
	}, nil
}
