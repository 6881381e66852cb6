package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// ScheduleInput поля формы, задающие визит (как пришли от клиента)
type ScheduleInput struct {
	Date      string
	Time      string
	PartySize string
}

// Schedule разобранные и проверенные поля визита
type Schedule struct {
	Date      time.Time
	Time      types.TimeString
	PartySize int
}

// ValidateSchedule проверяет дату, время и количество гостей.
// Возвращает все найденные ошибки.
func ValidateSchedule(in ScheduleInput, settings *BookingSettings, now time.Time) (Schedule, []string) {
	var (
		result   Schedule
		messages []string
	)

	today := settings.Today(now)
	dateOK := false

	if date := strings.TrimSpace(in.Date); date == "" {
		messages = append(messages, RequiredMessage("date"))
	} else if parsed, err := time.ParseInLocation(DateFormat, date, settings.location()); err != nil {
		messages = append(messages, "Date must be in YYYY-MM-DD format")
	} else if parsed.Before(today) {
		messages = append(messages, "Date cannot be in the past")
	} else if settings.BookingWindowDays > 0 && parsed.After(today.AddDate(0, 0, settings.BookingWindowDays)) {
		messages = append(messages, fmt.Sprintf("Date must be within the next %d days", settings.BookingWindowDays))
	} else {
		result.Date = parsed
		dateOK = true
	}

	if slotTime := strings.TrimSpace(in.Time); slotTime == "" {
		messages = append(messages, RequiredMessage("time"))
	} else if key, err := types.NewTimeStringFromString(slotTime); err != nil {
		messages = append(messages, "Time is not an available time slot")
	} else if _, ok := settings.Slot(key); !ok {
		messages = append(messages, "Time is not an available time slot")
	} else {
		result.Time = key
		if dateOK {
			if at, err := key.On(result.Date, settings.location()); err == nil && !at.After(now) {
				messages = append(messages, "Time cannot be in the past")
			}
		}
	}

	if party := strings.TrimSpace(in.PartySize); party == "" {
		messages = append(messages, RequiredMessage("party_size"))
	} else if size, err := strconv.Atoi(party); err != nil || size < MinPartySize {
		messages = append(messages, fmt.Sprintf("Party size must be at least %d", MinPartySize))
	} else if settings.MaxPartySize > 0 && size > settings.MaxPartySize {
		messages = append(messages, fmt.Sprintf("Party size cannot exceed %d", settings.MaxPartySize))
	} else {
		result.PartySize = size
	}

	return result, messages
}

// RequiredMessage "party_size" -> "Party size is required"
func RequiredMessage(field string) string {
	label := strings.ReplaceAll(field, "_", " ")
	if label == "" {
		return "Field is required"
	}
	return strings.ToUpper(label[:1]) + label[1:] + " is required"
}
