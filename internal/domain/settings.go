package domain

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// TimeSlot бронируемое время суток
type TimeSlot struct {
	Key   types.TimeString
	Label string
}

// BookingSettings настройки ресторана, загружаются один раз при старте
type BookingSettings struct {
	BusinessName           string
	BusinessEmail          string
	MaxPartySize           int
	BookingWindowDays      int
	TimeSlots              []TimeSlot // в порядке отображения
	MaxReservationsPerSlot int        // общий лимит гостей на слот
	EditWindowHours        int
	FormFields             []string
	Location               *time.Location
}

// Slot ищет слот по ключу
func (s *BookingSettings) Slot(key types.TimeString) (TimeSlot, bool) {
	for _, slot := range s.TimeSlots {
		if slot.Key == key {
			return slot, true
		}
	}
	return TimeSlot{}, false
}

// Today начало текущего дня в часовом поясе ресторана
func (s *BookingSettings) Today(now time.Time) time.Time {
	local := now.In(s.location())
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.location())
}

func (s *BookingSettings) location() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}

// RemainingCapacity свободные места в слоте, не меньше нуля
func RemainingCapacity(maxPerSlot, booked int) int {
	remaining := maxPerSlot - booked
	if remaining < 0 {
		return 0
	}
	return remaining
}
