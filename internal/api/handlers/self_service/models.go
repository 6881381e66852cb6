package self_service

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	selfService "github.com/m04kA/SMC-ReservationService/internal/usecase/self_service"
)

type CancelRequest struct {
	Token string `json:"token"`
}

type EditRequest struct {
	Token           string              `json:"token"`
	Date            string              `json:"date"`
	Time            string              `json:"time"`
	PartySize       handlers.FlexString `json:"partySize"`
	SpecialRequests string              `json:"specialRequests"`
}

type ReservationView struct {
	Code            string    `json:"code"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone,omitempty"`
	Date            string    `json:"date"`
	Time            string    `json:"time"`
	TimeLabel       string    `json:"timeLabel"`
	PartySize       int       `json:"partySize"`
	SpecialRequests string    `json:"specialRequests,omitempty"`
	Status          string    `json:"status"`
	CanModify       bool      `json:"canModify"`
	ModifyDeadline  time.Time `json:"modifyDeadline"`
}

type CancelResponse struct {
	Code    string `json:"code"`
	Status  string `json:"status"`
	Changed bool   `json:"changed"`
}

func (r *EditRequest) ToUseCaseRequest() *selfService.EditRequest {
	return &selfService.EditRequest{
		Token:           r.Token,
		Date:            r.Date,
		Time:            r.Time,
		PartySize:       strings.TrimSpace(string(r.PartySize)),
		SpecialRequests: r.SpecialRequests,
	}
}

func FromUseCaseView(v *selfService.View) *ReservationView {
	return &ReservationView{
		Code:            v.Code,
		Name:            v.Name,
		Email:           v.Email,
		Phone:           v.Phone,
		Date:            v.Date.Format(domain.DateFormat),
		Time:            v.Time.String(),
		TimeLabel:       v.TimeLabel,
		PartySize:       v.PartySize,
		SpecialRequests: v.SpecialRequests,
		Status:          v.Status,
		CanModify:       v.CanModify,
		ModifyDeadline:  v.ModifyDeadline,
	}
}

func FromUseCaseCancel(c *selfService.CancelResult) *CancelResponse {
	return &CancelResponse{Code: c.Code, Status: c.Status, Changed: c.Changed}
}
