package transition_status

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ReservationService/internal/service/actiontokens"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
)

type mockReservationRepository struct {
	mock.Mock
}

func (m *mockReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *mockReservationRepository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockReservationRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockVerifier struct {
	mock.Mock
}

func (m *mockVerifier) VerifyAction(ctx context.Context, token string, action domain.AdminAction, id int64) error {
	return m.Called(ctx, token, action, id).Error(0)
}

func (m *mockVerifier) IsBulkToken(token string, action domain.AdminAction) bool {
	return m.Called(token, action).Bool(0)
}

type inlineTxManager struct{}

func (inlineTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestUseCase(repo ReservationRepository, verifier ActionVerifier) *UseCase {
	return NewUseCase(repo, verifier, inlineTxManager{}, metrics.New("test", prometheus.NewRegistry()), logger.NewNop())
}

func TestUseCase_Execute_Approve(t *testing.T) {
	ctx := context.Background()
	repo := &mockReservationRepository{}
	verifier := &mockVerifier{}
	uc := newTestUseCase(repo, verifier)

	verifier.On("VerifyAction", ctx, "tok", domain.ActionApprove, int64(3)).Return(nil)
	repo.On("GetByID", ctx, int64(3)).Return(&domain.Reservation{ID: 3, Status: domain.StatusPending}, nil)
	repo.On("UpdateStatus", ctx, int64(3), domain.StatusApproved).Return(nil)

	resp, err := uc.Execute(ctx, &Request{ID: 3, Status: "approved", Token: "tok"})

	require.NoError(t, err)
	assert.Equal(t, &Response{ID: 3, Status: "approved", PreviousStatus: "pending", Changed: true}, resp)
	repo.AssertExpectations(t)
}

func TestUseCase_Execute_Idempotent(t *testing.T) {
	ctx := context.Background()
	repo := &mockReservationRepository{}
	verifier := &mockVerifier{}
	uc := newTestUseCase(repo, verifier)

	verifier.On("VerifyAction", ctx, mock.Anything, domain.ActionApprove, int64(3)).Return(nil)
	repo.On("GetByID", ctx, int64(3)).Return(&domain.Reservation{ID: 3, Status: domain.StatusPending}, nil).Once()
	repo.On("GetByID", ctx, int64(3)).Return(&domain.Reservation{ID: 3, Status: domain.StatusApproved}, nil).Once()
	repo.On("UpdateStatus", ctx, int64(3), domain.StatusApproved).Return(nil).Once()

	first, err := uc.Execute(ctx, &Request{ID: 3, Status: "approved", Token: "tok-1"})
	require.NoError(t, err)
	second, err := uc.Execute(ctx, &Request{ID: 3, Status: "approved", Token: "tok-2"})
	require.NoError(t, err)

	assert.True(t, first.Changed)
	assert.False(t, second.Changed)
	assert.Equal(t, "approved", second.Status)
	repo.AssertNumberOfCalls(t, "UpdateStatus", 1)
}

func TestUseCase_Execute_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid status", func(t *testing.T) {
		verifier := &mockVerifier{}
		uc := newTestUseCase(&mockReservationRepository{}, verifier)

		_, err := uc.Execute(ctx, &Request{ID: 1, Status: "pending", Token: "tok"})
		assert.ErrorIs(t, err, ErrInvalidStatus)
		verifier.AssertNotCalled(t, "VerifyAction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unauthorized before lookup", func(t *testing.T) {
		repo := &mockReservationRepository{}
		verifier := &mockVerifier{}
		uc := newTestUseCase(repo, verifier)

		verifier.On("VerifyAction", ctx, "", domain.ActionDecline, int64(1)).Return(actiontokens.ErrUnauthorized)

		_, err := uc.Execute(ctx, &Request{ID: 1, Status: "declined"})
		assert.ErrorIs(t, err, ErrUnauthorized)
		repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("verifier failure", func(t *testing.T) {
		verifier := &mockVerifier{}
		uc := newTestUseCase(&mockReservationRepository{}, verifier)

		verifier.On("VerifyAction", ctx, "tok", domain.ActionDecline, int64(1)).Return(actiontokens.ErrInternal)

		_, err := uc.Execute(ctx, &Request{ID: 1, Status: "declined", Token: "tok"})
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("not found", func(t *testing.T) {
		repo := &mockReservationRepository{}
		verifier := &mockVerifier{}
		uc := newTestUseCase(repo, verifier)

		verifier.On("VerifyAction", ctx, "tok", domain.ActionCancel, int64(9)).Return(nil)
		repo.On("GetByID", ctx, int64(9)).Return(nil, reservationRepo.ErrReservationNotFound)

		_, err := uc.Execute(ctx, &Request{ID: 9, Status: "cancelled", Token: "tok"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("terminal status", func(t *testing.T) {
		repo := &mockReservationRepository{}
		verifier := &mockVerifier{}
		uc := newTestUseCase(repo, verifier)

		verifier.On("VerifyAction", ctx, "tok", domain.ActionApprove, int64(4)).Return(nil)
		repo.On("GetByID", ctx, int64(4)).Return(&domain.Reservation{ID: 4, Status: domain.StatusDeclined}, nil)

		_, err := uc.Execute(ctx, &Request{ID: 4, Status: "approved", Token: "tok"})
		assert.ErrorIs(t, err, ErrInvalidTransition)
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUseCase_ExecuteBulk(t *testing.T) {
	ctx := context.Background()
	repo := &mockReservationRepository{}
	verifier := &mockVerifier{}
	uc := newTestUseCase(repo, verifier)

	verifier.On("IsBulkToken", "bulk", domain.ActionApprove).Return(true)
	repo.On("GetByID", ctx, int64(1)).Return(&domain.Reservation{ID: 1, Status: domain.StatusPending}, nil)
	repo.On("GetByID", ctx, int64(2)).Return(nil, reservationRepo.ErrReservationNotFound)
	repo.On("GetByID", ctx, int64(3)).Return(&domain.Reservation{ID: 3, Status: domain.StatusCancelled}, nil)
	repo.On("GetByID", ctx, int64(4)).Return(&domain.Reservation{ID: 4, Status: domain.StatusApproved}, nil)
	repo.On("UpdateStatus", ctx, int64(1), domain.StatusApproved).Return(nil)

	resp, err := uc.ExecuteBulk(ctx, &BulkRequest{IDs: []int64{1, 2, 3, 4}, Action: "approve", Token: "bulk"})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Succeeded)
	assert.Equal(t, 2, resp.Failed)
	assert.Equal(t, []BulkItem{
		{ID: 1, Status: "approved", Changed: true},
		{ID: 2, Error: itemNotFound},
		{ID: 3, Error: itemInvalidTransition},
		{ID: 4, Status: "approved", Changed: false},
	}, resp.Items)
	verifier.AssertNotCalled(t, "VerifyAction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUseCase_ExecuteBulk_Delete(t *testing.T) {
	ctx := context.Background()
	repo := &mockReservationRepository{}
	verifier := &mockVerifier{}
	uc := newTestUseCase(repo, verifier)

	verifier.On("IsBulkToken", "bulk", domain.ActionDelete).Return(true)
	repo.On("Delete", ctx, int64(1)).Return(nil)
	repo.On("Delete", ctx, int64(2)).Return(errors.New("db down"))

	resp, err := uc.ExecuteBulk(ctx, &BulkRequest{IDs: []int64{1, 2}, Action: "delete", Token: "bulk"})

	require.NoError(t, err)
	assert.Equal(t, []BulkItem{
		{ID: 1, Changed: true},
		{ID: 2, Error: itemInternal},
	}, resp.Items)
}

func TestUseCase_ExecuteBulk_Rejected(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown action", func(t *testing.T) {
		uc := newTestUseCase(&mockReservationRepository{}, &mockVerifier{})
		_, err := uc.ExecuteBulk(ctx, &BulkRequest{IDs: []int64{1}, Action: "edit", Token: "bulk"})
		assert.ErrorIs(t, err, ErrInvalidAction)
	})

	t.Run("not a bulk token", func(t *testing.T) {
		repo := &mockReservationRepository{}
		verifier := &mockVerifier{}
		uc := newTestUseCase(repo, verifier)

		verifier.On("IsBulkToken", "single", domain.ActionCancel).Return(false)

		_, err := uc.ExecuteBulk(ctx, &BulkRequest{IDs: []int64{1}, Action: "cancel", Token: "single"})
		assert.ErrorIs(t, err, ErrUnauthorized)
		repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}
