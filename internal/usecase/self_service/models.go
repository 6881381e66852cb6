package self_service

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// EditRequest перенос брони гостем
type EditRequest struct {
	Token           string
	Date            string
	Time            string
	PartySize       string
	SpecialRequests string
}

// View бронь, как ее видит гость по ссылке из письма
type View struct {
	Code            string
	Name            string
	Email           string
	Phone           string
	Date            time.Time
	Time            types.TimeString
	TimeLabel       string
	PartySize       int
	SpecialRequests string
	Status          string
	CanModify       bool      // можно ли еще отменить или перенести
	ModifyDeadline  time.Time // после этого момента изменения недоступны
}

// CancelResult результат отмены
type CancelResult struct {
	Code    string
	Status  string
	Changed bool // false, если бронь уже была отменена
}
