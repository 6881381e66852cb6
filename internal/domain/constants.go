package domain

import "time"

// Значения настроек по умолчанию
const (
	DefaultBusinessName           = "Restaurant"
	DefaultMaxPartySize           = 8
	DefaultBookingWindowDays      = 30
	DefaultMaxReservationsPerSlot = 5
	DefaultEditWindowHours        = 24
	DefaultTimeSlotDuration       = 30
	DefaultTimezone               = "UTC"
)

// Ограничения бизнес-логики
const (
	MinPartySize             = 1
	CleanupRetentionDays     = 30
	ReservationCodeLength    = 12
	EditTokenLength          = 32
	DefaultPerPage           = 20
	MaxPerPage               = 100
	DashboardWeekDays        = 7
	MaxSpecialRequestsLength = 1000
)

// Форматы даты и времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD

	// Форматы для писем
	EmailDateFormat = "January 2, 2006"
	EmailTimeFormat = "3:04 PM"
)

// CleanupCutoff граница удаления отмененных бронирований
func CleanupCutoff(now time.Time) time.Time {
	return now.AddDate(0, 0, -CleanupRetentionDays)
}
