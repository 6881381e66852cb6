package submit_reservation

import (
	"strings"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	submitReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/submit_reservation"
)

// SubmitReservationRequest поля публичной формы.
// partySize принимается и числом, и строкой.
type SubmitReservationRequest struct {
	Name            string              `json:"name"`
	Email           string              `json:"email"`
	Phone           string              `json:"phone"`
	Date            string              `json:"date"` // "2025-10-20"
	Time            string              `json:"time"` // "18:30"
	PartySize       handlers.FlexString `json:"partySize"`
	SpecialRequests string              `json:"specialRequests"`
	Nonce           string              `json:"nonce,omitempty"` // CSRF токен, если не передан заголовком
}

type ReservationResponse struct {
	Code      string `json:"code"`
	Status    string `json:"status"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	TimeLabel string `json:"timeLabel"`
	PartySize int    `json:"partySize"`
	Message   string `json:"message"`
}

func (r *SubmitReservationRequest) ToUseCaseRequest() *submitReservation.Request {
	return &submitReservation.Request{
		Name:            r.Name,
		Email:           r.Email,
		Phone:           r.Phone,
		Date:            r.Date,
		Time:            r.Time,
		PartySize:       strings.TrimSpace(string(r.PartySize)),
		SpecialRequests: r.SpecialRequests,
	}
}

func FromUseCaseResponse(resp *submitReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		Code:      resp.Code,
		Status:    resp.Status,
		Date:      resp.Date.Format(domain.DateFormat),
		Time:      resp.Time.String(),
		TimeLabel: resp.Time.Label(),
		PartySize: resp.PartySize,
		Message:   resp.Message,
	}
}
