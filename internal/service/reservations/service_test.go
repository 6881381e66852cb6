package reservations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ReservationService/internal/service/actiontokens"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

type mockReservationRepository struct {
	mock.Mock
}

func (m *mockReservationRepository) List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domain.Reservation), args.Int(1), args.Error(2)
}

func (m *mockReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *mockReservationRepository) GetByCode(ctx context.Context, code string) (*domain.Reservation, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *mockReservationRepository) Update(ctx context.Context, res *domain.Reservation) error {
	args := m.Called(ctx, res)
	return args.Error(0)
}

func (m *mockReservationRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockReservationRepository) Stats(ctx context.Context, today, weekEnd time.Time) (*domain.ReservationStats, error) {
	args := m.Called(ctx, today, weekEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReservationStats), args.Error(1)
}

type mockVerifier struct {
	mock.Mock
}

func (m *mockVerifier) VerifyAction(ctx context.Context, token string, action domain.AdminAction, id int64) error {
	args := m.Called(ctx, token, action, id)
	return args.Error(0)
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time { return f.now }

var testNow = time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)

func testSettings() *domain.BookingSettings {
	return &domain.BookingSettings{
		BusinessName:           "Trattoria",
		MaxPartySize:           8,
		BookingWindowDays:      30,
		MaxReservationsPerSlot: 5,
		EditWindowHours:        24,
		TimeSlots: []domain.TimeSlot{
			{Key: "18:00", Label: "6:00 PM"},
			{Key: "19:00", Label: "7:00 PM"},
		},
		Location: time.UTC,
	}
}

func newTestService(repo ReservationRepository, verifier ActionVerifier) *Service {
	svc := NewService(repo, verifier, testSettings(), logger.NewNop())
	svc.timeProvider = &fixedTime{now: testNow}
	return svc
}

func pendingReservation() *domain.Reservation {
	return &domain.Reservation{
		ID:        5,
		Code:      "ABCDEF123456",
		Name:      "Mario",
		Email:     "mario@example.com",
		Date:      time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC),
		Time:      "18:00",
		PartySize: 2,
		Status:    domain.StatusPending,
	}
}

func TestService_List_Pagination(t *testing.T) {
	ctx := context.Background()
	repo := &mockReservationRepository{}
	svc := newTestService(repo, &mockVerifier{})

	repo.On("List", ctx, domain.ReservationFilter{
		Search: "mario",
		Status: ptr.Ptr(domain.StatusApproved),
		Desc:   false,
		Limit:  20,
		Offset: 20,
	}).Return([]*domain.Reservation{pendingReservation()}, 41, nil)

	resp, err := svc.List(ctx, &models.ListRequest{
		Search: "mario",
		Status: ptr.Ptr("approved"),
		Order:  "asc",
		Page:   2,
	})

	require.NoError(t, err)
	assert.Equal(t, 41, resp.Total)
	assert.Equal(t, 3, resp.TotalPages)
	assert.Equal(t, 20, resp.PerPage)
	require.Len(t, resp.Reservations, 1)
	assert.Equal(t, "6:00 PM", resp.Reservations[0].TimeLabel)
}

func TestService_List_InvalidStatus(t *testing.T) {
	svc := newTestService(&mockReservationRepository{}, &mockVerifier{})

	_, err := svc.List(context.Background(), &models.ListRequest{Status: ptr.Ptr("completed")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	validRequest := func() *models.UpdateRequest {
		return &models.UpdateRequest{
			Name:       "Mario Rossi",
			Email:      "mario@example.com",
			Date:       "2025-10-20",
			Time:       "18:00",
			PartySize:  2,
			Status:     "approved",
			AdminNotes: "VIP",
		}
	}

	t.Run("success", func(t *testing.T) {
		repo := &mockReservationRepository{}
		verifier := &mockVerifier{}
		svc := newTestService(repo, verifier)

		verifier.On("VerifyAction", ctx, "tok", domain.ActionEdit, int64(5)).Return(nil)
		repo.On("GetByID", ctx, int64(5)).Return(pendingReservation(), nil)
		repo.On("Update", ctx, mock.MatchedBy(func(res *domain.Reservation) bool {
			return res.Status == domain.StatusApproved && res.AdminNotes == "VIP" && res.Name == "Mario Rossi"
		})).Return(nil)

		resp, err := svc.Update(ctx, 5, validRequest(), "tok")
		require.NoError(t, err)
		assert.Equal(t, "approved", resp.Status)
	})

	t.Run("unauthorized", func(t *testing.T) {
		repo := &mockReservationRepository{}
		verifier := &mockVerifier{}
		svc := newTestService(repo, verifier)

		verifier.On("VerifyAction", ctx, "bad", domain.ActionEdit, int64(5)).Return(actiontokens.ErrUnauthorized)

		_, err := svc.Update(ctx, 5, validRequest(), "bad")
		assert.ErrorIs(t, err, ErrUnauthorized)
		repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("terminal status cannot be reopened", func(t *testing.T) {
		repo := &mockReservationRepository{}
		verifier := &mockVerifier{}
		svc := newTestService(repo, verifier)

		declined := pendingReservation()
		declined.Status = domain.StatusDeclined
		verifier.On("VerifyAction", ctx, "tok", domain.ActionEdit, int64(5)).Return(nil)
		repo.On("GetByID", ctx, int64(5)).Return(declined, nil)

		_, err := svc.Update(ctx, 5, validRequest(), "tok")
		assert.ErrorIs(t, err, ErrInvalidTransition)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("rescheduling is validated", func(t *testing.T) {
		repo := &mockReservationRepository{}
		verifier := &mockVerifier{}
		svc := newTestService(repo, verifier)

		verifier.On("VerifyAction", ctx, "tok", domain.ActionEdit, int64(5)).Return(nil)
		repo.On("GetByID", ctx, int64(5)).Return(pendingReservation(), nil)

		req := validRequest()
		req.Time = "18:15"
		req.PartySize = 12
		req.Email = ""

		_, err := svc.Update(ctx, 5, req, "tok")
		require.ErrorIs(t, err, domain.ErrValidation)
		assert.ElementsMatch(t, []string{
			"Email is required",
			"Time is not an available time slot",
			"Party size cannot exceed 8",
		}, domain.ValidationMessages(err))
	})

	t.Run("not found", func(t *testing.T) {
		repo := &mockReservationRepository{}
		verifier := &mockVerifier{}
		svc := newTestService(repo, verifier)

		verifier.On("VerifyAction", ctx, "tok", domain.ActionEdit, int64(5)).Return(nil)
		repo.On("GetByID", ctx, int64(5)).Return(nil, reservationRepo.ErrReservationNotFound)

		_, err := svc.Update(ctx, 5, validRequest(), "tok")
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	repo := &mockReservationRepository{}
	verifier := &mockVerifier{}
	svc := newTestService(repo, verifier)

	verifier.On("VerifyAction", ctx, "tok", domain.ActionDelete, int64(5)).Return(nil)
	verifier.On("VerifyAction", ctx, "tok", domain.ActionDelete, int64(6)).Return(nil)
	verifier.On("VerifyAction", ctx, "tok", domain.ActionDelete, int64(7)).Return(errors.New("db down"))
	repo.On("Delete", ctx, int64(5)).Return(nil)
	repo.On("Delete", ctx, int64(6)).Return(reservationRepo.ErrReservationNotFound)

	assert.NoError(t, svc.Delete(ctx, 5, "tok"))
	assert.ErrorIs(t, svc.Delete(ctx, 6, "tok"), ErrReservationNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, 7, "tok"), ErrInternal)
}

func TestService_Stats(t *testing.T) {
	ctx := context.Background()
	repo := &mockReservationRepository{}
	svc := newTestService(repo, &mockVerifier{})

	today := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	repo.On("Stats", ctx, today, today.AddDate(0, 0, 7)).
		Return(&domain.ReservationStats{Today: 3, Pending: 4, ThisWeek: 11}, nil)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &models.StatsResponse{Today: 3, Pending: 4, ThisWeek: 11}, stats)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, models.TotalPages(0, 20))
	assert.Equal(t, 1, models.TotalPages(20, 20))
	assert.Equal(t, 2, models.TotalPages(21, 20))
}
