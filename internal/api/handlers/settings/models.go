package settings

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

type TimeSlotResponse struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// SettingsResponse все, что нужно для отрисовки публичной формы
type SettingsResponse struct {
	BusinessName      string             `json:"businessName"`
	MaxPartySize      int                `json:"maxPartySize"`
	BookingWindowDays int                `json:"bookingWindowDays"`
	EditWindowHours   int                `json:"editWindowHours"`
	Timezone          string             `json:"timezone"`
	TimeSlots         []TimeSlotResponse `json:"timeSlots"`
	FormFields        []string           `json:"formFields"`
}

type FormTokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func FromDomainSettings(s *domain.BookingSettings) *SettingsResponse {
	resp := &SettingsResponse{
		BusinessName:      s.BusinessName,
		MaxPartySize:      s.MaxPartySize,
		BookingWindowDays: s.BookingWindowDays,
		EditWindowHours:   s.EditWindowHours,
		TimeSlots:         make([]TimeSlotResponse, 0, len(s.TimeSlots)),
		FormFields:        s.FormFields,
	}
	if s.Location != nil {
		resp.Timezone = s.Location.String()
	}
	for _, slot := range s.TimeSlots {
		resp.TimeSlots = append(resp.TimeSlots, TimeSlotResponse{Key: slot.Key.String(), Label: slot.Label})
	}
	return resp
}
