package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

func testSettings() *BookingSettings {
	return &BookingSettings{
		BusinessName:           "Trattoria",
		MaxPartySize:           8,
		BookingWindowDays:      30,
		MaxReservationsPerSlot: 5,
		EditWindowHours:        24,
		TimeSlots: []TimeSlot{
			{Key: "18:00", Label: "6:00 PM"},
			{Key: "19:00", Label: "7:00 PM"},
		},
		Location: time.UTC,
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to ReservationStatus
		want     bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusDeclined, true},
		{StatusPending, StatusCancelled, true},
		{StatusApproved, StatusCancelled, true},
		{StatusApproved, StatusDeclined, false},
		{StatusDeclined, StatusApproved, false},
		{StatusCancelled, StatusApproved, false},
		{StatusCancelled, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestReservationStatus_IsTerminal(t *testing.T) {
	assert.True(t, StatusDeclined.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusApproved.IsTerminal())
	assert.False(t, ReservationStatus("completed").IsValid())
}

func TestReservation_CanSelfServiceModify(t *testing.T) {
	now := time.Date(2025, 10, 15, 17, 0, 0, 0, time.UTC)

	inOneHour := &Reservation{Date: time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC), Time: "18:00"}
	assert.False(t, inOneHour.CanSelfServiceModify(now, 24, time.UTC))

	exactlyAtWindow := &Reservation{Date: time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC), Time: "17:00"}
	assert.False(t, exactlyAtWindow.CanSelfServiceModify(now, 24, time.UTC))

	inTwoDays := &Reservation{Date: time.Date(2025, 10, 17, 0, 0, 0, 0, time.UTC), Time: "18:00"}
	assert.True(t, inTwoDays.CanSelfServiceModify(now, 24, time.UTC))
}

func TestValidateSchedule(t *testing.T) {
	settings := testSettings()
	now := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)

	t.Run("valid", func(t *testing.T) {
		got, messages := ValidateSchedule(ScheduleInput{Date: "2025-10-20", Time: "19:00", PartySize: "4"}, settings, now)
		require.Empty(t, messages)
		assert.Equal(t, time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC), got.Date)
		assert.Equal(t, types.TimeString("19:00"), got.Time)
		assert.Equal(t, 4, got.PartySize)
	})

	t.Run("all missing", func(t *testing.T) {
		_, messages := ValidateSchedule(ScheduleInput{}, settings, now)
		assert.Equal(t, []string{"Date is required", "Time is required", "Party size is required"}, messages)
	})

	t.Run("party size zero", func(t *testing.T) {
		_, messages := ValidateSchedule(ScheduleInput{Date: "2025-10-20", Time: "19:00", PartySize: "0"}, settings, now)
		assert.Equal(t, []string{"Party size must be at least 1"}, messages)
	})

	t.Run("party size above max", func(t *testing.T) {
		_, messages := ValidateSchedule(ScheduleInput{Date: "2025-10-20", Time: "19:00", PartySize: "9"}, settings, now)
		assert.Equal(t, []string{"Party size cannot exceed 8"}, messages)
	})

	t.Run("past date and unknown slot", func(t *testing.T) {
		_, messages := ValidateSchedule(ScheduleInput{Date: "2025-10-01", Time: "18:30", PartySize: "2"}, settings, now)
		assert.Equal(t, []string{"Date cannot be in the past", "Time is not an available time slot"}, messages)
	})

	t.Run("beyond booking window", func(t *testing.T) {
		_, messages := ValidateSchedule(ScheduleInput{Date: "2025-11-20", Time: "18:00", PartySize: "2"}, settings, now)
		assert.Equal(t, []string{"Date must be within the next 30 days"}, messages)
	})

	t.Run("slot already passed today", func(t *testing.T) {
		late := time.Date(2025, 10, 15, 18, 30, 0, 0, time.UTC)
		_, messages := ValidateSchedule(ScheduleInput{Date: "2025-10-15", Time: "18:00", PartySize: "2"}, settings, late)
		assert.Equal(t, []string{"Time cannot be in the past"}, messages)
	})
}

func TestRequiredMessage(t *testing.T) {
	assert.Equal(t, "Email is required", RequiredMessage("email"))
	assert.Equal(t, "Party size is required", RequiredMessage("party_size"))
}

func TestValidationError(t *testing.T) {
	err := NewValidationError([]string{"Email is required"})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, []string{"Email is required"}, ValidationMessages(err))
	assert.NoError(t, NewValidationError(nil))
}

func TestRemainingCapacity(t *testing.T) {
	assert.Equal(t, 1, RemainingCapacity(5, 4))
	assert.Equal(t, 5, RemainingCapacity(5, 0))
	assert.Equal(t, 0, RemainingCapacity(5, 7))
}

func TestValidateContact(t *testing.T) {
	tests := []struct {
		name string
		in   ContactInput
		want []string
	}{
		{
			name: "valid",
			in:   ContactInput{Name: "Mario", Email: "mario@example.com"},
		},
		{
			name: "all missing",
			in:   ContactInput{},
			want: []string{"Name is required", "Email is required"},
		},
		{
			name: "malformed email",
			in:   ContactInput{Name: "Mario", Email: "mario-at-example"},
			want: []string{"Email is not valid"},
		},
		{
			name: "display name is not accepted",
			in:   ContactInput{Name: "Mario", Email: "Mario <mario@example.com>"},
			want: []string{"Email is not valid"},
		},
		{
			name: "special requests too long",
			in:   ContactInput{Name: "Mario", Email: "mario@example.com", SpecialRequests: strings.Repeat("a", MaxSpecialRequestsLength+1)},
			want: []string{"Special requests cannot exceed 1000 characters"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateContact(tt.in))
		})
	}
}
