package submit_reservation

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// memoryRepository хранит брони в памяти
type memoryRepository struct {
	mu        sync.Mutex
	rows      []*domain.Reservation
	nextID    int64
	createErr error
}

func (r *memoryRepository) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	stored := *res
	stored.ID = r.nextID
	r.rows = append(r.rows, &stored)
	return &stored, nil
}

func (r *memoryRepository) ExistsByCode(_ context.Context, code string) (bool, error) {
	_, ok := r.find(func(res *domain.Reservation) bool { return res.Code == code })
	return ok, nil
}

func (r *memoryRepository) ExistsByEditToken(_ context.Context, token string) (bool, error) {
	_, ok := r.find(func(res *domain.Reservation) bool { return res.EditToken == token })
	return ok, nil
}

func (r *memoryRepository) SumPartySize(
	_ context.Context,
	date time.Time,
	slot types.TimeString,
	statuses []domain.ReservationStatus,
	excludeID *int64,
) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := 0
	for _, res := range r.rows {
		if !res.Date.Equal(date) || res.Time != slot {
			continue
		}
		if excludeID != nil && res.ID == *excludeID {
			continue
		}
		for _, s := range statuses {
			if res.Status == s {
				total += res.PartySize
			}
		}
	}
	return total, nil
}

func (r *memoryRepository) find(match func(*domain.Reservation) bool) (*domain.Reservation, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, res := range r.rows {
		if match(res) {
			return res, true
		}
	}
	return nil, false
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) SendCustomerConfirmation(ctx context.Context, res *domain.Reservation) error {
	return m.Called(ctx, res).Error(0)
}

func (m *mockNotifier) SendAdminNotification(ctx context.Context, res *domain.Reservation) error {
	return m.Called(ctx, res).Error(0)
}

type inlineTxManager struct{}

func (inlineTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time { return f.now }

var testNow = time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)

func testSettings() *domain.BookingSettings {
	return &domain.BookingSettings{
		BusinessName:           "Trattoria",
		BusinessEmail:          "owner@trattoria.example",
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

func newTestUseCase(repo ReservationRepository, notifier Notifier) *UseCase {
	uc := NewUseCase(repo, notifier, inlineTxManager{}, testSettings(),
		metrics.New("test", prometheus.NewRegistry()), logger.NewNop())
	uc.timeProvider = &fixedTime{now: testNow}
	return uc
}

func silentNotifier() *mockNotifier {
	n := &mockNotifier{}
	n.On("SendCustomerConfirmation", mock.Anything, mock.Anything).Return(nil)
	n.On("SendAdminNotification", mock.Anything, mock.Anything).Return(nil)
	return n
}

func validRequest() *Request {
	return &Request{
		Name:      "Mario Rossi",
		Email:     "mario@example.com",
		Phone:     "+39 555 0101",
		Date:      "2025-10-20",
		Time:      "18:00",
		PartySize: "2",
	}
}

func TestUseCase_Execute_Success(t *testing.T) {
	repo := &memoryRepository{}
	notifier := silentNotifier()
	uc := newTestUseCase(repo, notifier)

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[A-Z0-9]{12}$`), resp.Code)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "Reservation submitted successfully! Your confirmation code is: "+resp.Code+
		". We will contact you shortly to confirm.", resp.Message)

	require.Len(t, repo.rows, 1)
	stored := repo.rows[0]
	assert.Len(t, stored.EditToken, domain.EditTokenLength)
	assert.Equal(t, domain.StatusPending, stored.Status)
	notifier.AssertExpectations(t)
}

func TestUseCase_Execute_RoundTrip(t *testing.T) {
	repo := &memoryRepository{}
	uc := newTestUseCase(repo, silentNotifier())

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	byCode, ok := repo.find(func(r *domain.Reservation) bool { return r.Code == resp.Code })
	require.True(t, ok)
	byToken, ok := repo.find(func(r *domain.Reservation) bool { return r.EditToken == byCode.EditToken })
	require.True(t, ok)

	assert.Equal(t, resp.ID, byCode.ID)
	assert.Equal(t, byCode.ID, byToken.ID)
}

func TestUseCase_Execute_MissingEmail(t *testing.T) {
	repo := &memoryRepository{}
	notifier := &mockNotifier{}
	uc := newTestUseCase(repo, notifier)

	req := validRequest()
	req.Email = ""

	_, err := uc.Execute(context.Background(), req)

	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, domain.ValidationMessages(err), "Email is required")
	assert.Empty(t, repo.rows)
	notifier.AssertNotCalled(t, "SendCustomerConfirmation", mock.Anything, mock.Anything)
}

func TestUseCase_Execute_ListsEveryMissingField(t *testing.T) {
	uc := newTestUseCase(&memoryRepository{}, &mockNotifier{})

	_, err := uc.Execute(context.Background(), &Request{})

	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, []string{
		"Name is required",
		"Email is required",
		"Date is required",
		"Time is required",
		"Party size is required",
	}, domain.ValidationMessages(err))
}

func TestUseCase_Execute_PartySizeBoundary(t *testing.T) {
	t.Run("zero is rejected", func(t *testing.T) {
		repo := &memoryRepository{}
		uc := newTestUseCase(repo, &mockNotifier{})

		req := validRequest()
		req.PartySize = "0"

		_, err := uc.Execute(context.Background(), req)
		require.ErrorIs(t, err, domain.ErrValidation)
		assert.Empty(t, repo.rows)
	})

	t.Run("exactly remaining capacity is accepted", func(t *testing.T) {
		repo := &memoryRepository{}
		uc := newTestUseCase(repo, silentNotifier())

		first := validRequest()
		first.PartySize = "3"
		_, err := uc.Execute(context.Background(), first)
		require.NoError(t, err)

		second := validRequest()
		second.PartySize = "2"
		_, err = uc.Execute(context.Background(), second)
		require.NoError(t, err)

		third := validRequest()
		third.PartySize = "1"
		_, err = uc.Execute(context.Background(), third)
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
		assert.Len(t, repo.rows, 2)
	})
}

func TestUseCase_Execute_ScheduleRules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Request)
		message string
	}{
		{name: "past date", mutate: func(r *Request) { r.Date = "2025-10-14" }, message: "Date cannot be in the past"},
		{name: "beyond window", mutate: func(r *Request) { r.Date = "2025-11-15" }, message: "Date must be within the next 30 days"},
		{name: "unknown slot", mutate: func(r *Request) { r.Time = "18:45" }, message: "Time is not an available time slot"},
		{name: "too many guests", mutate: func(r *Request) { r.PartySize = "9" }, message: "Party size cannot exceed 8"},
		{name: "bad email", mutate: func(r *Request) { r.Email = "mario" }, message: "Email is not valid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(&memoryRepository{}, &mockNotifier{})
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			require.ErrorIs(t, err, domain.ErrValidation)
			assert.Contains(t, domain.ValidationMessages(err), tt.message)
		})
	}
}

func TestUseCase_Execute_NotificationFailureDoesNotFail(t *testing.T) {
	repo := &memoryRepository{}
	notifier := &mockNotifier{}
	notifier.On("SendCustomerConfirmation", mock.Anything, mock.Anything).Return(errors.New("smtp down"))
	notifier.On("SendAdminNotification", mock.Anything, mock.Anything).Return(errors.New("smtp down"))
	uc := newTestUseCase(repo, notifier)

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Code)
	assert.Len(t, repo.rows, 1)
	notifier.AssertExpectations(t)
}

func TestUseCase_Execute_PersistenceFailure(t *testing.T) {
	repo := &memoryRepository{createErr: errors.New("disk full")}
	notifier := &mockNotifier{}
	uc := newTestUseCase(repo, notifier)

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrPersistence)
	notifier.AssertNotCalled(t, "SendCustomerConfirmation", mock.Anything, mock.Anything)
}

func TestUseCase_Execute_RegeneratesTakenCode(t *testing.T) {
	repo := &memoryRepository{}
	repo.rows = append(repo.rows, &domain.Reservation{ID: 1, Code: "TAKEN0000000", EditToken: "x"})
	repo.nextID = 1
	uc := newTestUseCase(repo, silentNotifier())

	codes := []string{"TAKEN0000000", "FRESH0000000"}
	uc.newCode = func() (string, error) {
		c := codes[0]
		codes = codes[1:]
		return c, nil
	}

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "FRESH0000000", resp.Code)
}

func TestGenerateCode(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		code, err := generateCode()
		require.NoError(t, err)
		assert.Regexp(t, `^[A-Z0-9]{12}$`, code)
		seen[code] = struct{}{}
	}
	assert.Len(t, seen, 100)
}
