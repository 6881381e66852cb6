package submit_reservation

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Request поля публичной формы, как пришли от клиента
type Request struct {
	Name            string
	Email           string
	Phone           string
	Date            string // "2025-10-15"
	Time            string // "19:00"
	PartySize       string
	SpecialRequests string
}

// Response результат отправки заявки
type Response struct {
	ID        int64
	Code      string // Код подтверждения для гостя
	Status    string
	Date      time.Time
	Time      types.TimeString
	PartySize int
	Message   string
}
