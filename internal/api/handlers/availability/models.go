package availability

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	checkAvailability "github.com/m04kA/SMC-ReservationService/internal/usecase/check_availability"
)

var errMissingParameters = errors.New("date and party_size are required")

type SlotResponse struct {
	Key       string `json:"key"`
	Label     string `json:"label"`
	Remaining int    `json:"remaining"`
}

type AvailabilityResponse struct {
	Date      string         `json:"date"`
	PartySize int            `json:"partySize"`
	Slots     []SlotResponse `json:"slots"`
}

// ToUseCaseRequest разбирает query параметры date и party_size
func ToUseCaseRequest(dateStr, partySizeStr string, loc *time.Location) (*checkAvailability.Request, error) {
	dateStr = strings.TrimSpace(dateStr)
	partySizeStr = strings.TrimSpace(partySizeStr)
	if dateStr == "" || partySizeStr == "" {
		return nil, errMissingParameters
	}

	date, err := time.ParseInLocation(domain.DateFormat, dateStr, loc)
	if err != nil {
		return nil, err
	}

	partySize, err := strconv.Atoi(partySizeStr)
	if err != nil {
		return nil, err
	}

	return &checkAvailability.Request{Date: date, PartySize: partySize}, nil
}

func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	result := &AvailabilityResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		PartySize: resp.PartySize,
		Slots:     make([]SlotResponse, 0, len(resp.Slots)),
	}
	for _, slot := range resp.Slots {
		result.Slots = append(result.Slots, SlotResponse{
			Key:       slot.Key.String(),
			Label:     slot.Label,
			Remaining: slot.Remaining,
		})
	}
	return result
}
