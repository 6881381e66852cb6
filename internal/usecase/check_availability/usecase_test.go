package check_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

type mockReservationRepository struct {
	mock.Mock
}

func (m *mockReservationRepository) SumPartySizeBySlot(
	ctx context.Context,
	date time.Time,
	statuses []domain.ReservationStatus,
) (map[types.TimeString]int, error) {
	args := m.Called(ctx, date, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[types.TimeString]int), args.Error(1)
}

var visitDate = time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)

func scenarioSettings() *domain.BookingSettings {
	return &domain.BookingSettings{
		MaxReservationsPerSlot: 5,
		TimeSlots: []domain.TimeSlot{
			{Key: "18:00", Label: "6:00 PM"},
			{Key: "19:00", Label: "7:00 PM"},
		},
		Location: time.UTC,
	}
}

func newScenarioUseCase(t *testing.T) *UseCase {
	repo := &mockReservationRepository{}
	// две одобренные брони на 6:00 PM, всего 4 гостя
	repo.On("SumPartySizeBySlot", mock.Anything, visitDate, domain.CapacityStatuses).
		Return(map[types.TimeString]int{"18:00": 4}, nil)
	t.Cleanup(func() { repo.AssertExpectations(t) })
	return NewUseCase(repo, scenarioSettings(), logger.NewNop())
}

func TestUseCase_Execute_PartyOfOne(t *testing.T) {
	uc := newScenarioUseCase(t)

	resp, err := uc.Execute(context.Background(), &Request{Date: visitDate, PartySize: 1})

	require.NoError(t, err)
	assert.Equal(t, []Slot{
		{Key: "18:00", Label: "6:00 PM", Remaining: 1},
		{Key: "19:00", Label: "7:00 PM", Remaining: 5},
	}, resp.Slots)
}

func TestUseCase_Execute_PartyOfTwo(t *testing.T) {
	uc := newScenarioUseCase(t)

	resp, err := uc.Execute(context.Background(), &Request{Date: visitDate, PartySize: 2})

	require.NoError(t, err)
	assert.Equal(t, []Slot{{Key: "19:00", Label: "7:00 PM", Remaining: 5}}, resp.Slots)
}

func TestUseCase_Execute_RemainingNeverBelowPartySize(t *testing.T) {
	for party := 1; party <= 6; party++ {
		uc := newScenarioUseCase(t)
		resp, err := uc.Execute(context.Background(), &Request{Date: visitDate, PartySize: party})
		require.NoError(t, err)
		for _, slot := range resp.Slots {
			assert.GreaterOrEqual(t, slot.Remaining, party)
		}
	}
}

func TestUseCase_Execute_OverbookedSlotIsOmitted(t *testing.T) {
	repo := &mockReservationRepository{}
	repo.On("SumPartySizeBySlot", mock.Anything, visitDate, domain.CapacityStatuses).
		Return(map[types.TimeString]int{"18:00": 7}, nil)
	uc := NewUseCase(repo, scenarioSettings(), logger.NewNop())

	resp, err := uc.Execute(context.Background(), &Request{Date: visitDate, PartySize: 1})

	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, types.TimeString("19:00"), resp.Slots[0].Key)
}

func TestUseCase_Execute_InvalidParameters(t *testing.T) {
	tests := []struct {
		name string
		req  *Request
	}{
		{name: "no date", req: &Request{PartySize: 2}},
		{name: "zero party", req: &Request{Date: visitDate}},
		{name: "negative party", req: &Request{Date: visitDate, PartySize: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockReservationRepository{}
			uc := NewUseCase(repo, scenarioSettings(), logger.NewNop())

			_, err := uc.Execute(context.Background(), tt.req)

			assert.ErrorIs(t, err, ErrInvalidParameters)
			repo.AssertNotCalled(t, "SumPartySizeBySlot", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestUseCase_Execute_RepositoryError(t *testing.T) {
	repo := &mockReservationRepository{}
	repo.On("SumPartySizeBySlot", mock.Anything, visitDate, domain.CapacityStatuses).Return(nil, errors.New("db down"))
	uc := NewUseCase(repo, scenarioSettings(), logger.NewNop())

	_, err := uc.Execute(context.Background(), &Request{Date: visitDate, PartySize: 1})
	assert.ErrorIs(t, err, ErrInternal)
}
