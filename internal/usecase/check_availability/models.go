package check_availability

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Request модель запроса проверки доступности
type Request struct {
	Date      time.Time // Дата визита (без времени)
	PartySize int       // Количество гостей
}

// Response модель ответа со списком слотов, вмещающих компанию
type Response struct {
	Date      time.Time
	PartySize int
	Slots     []Slot // В порядке настройки
}

// Slot доступный слот
type Slot struct {
	Key       types.TimeString // "19:00"
	Label     string           // "7:00 PM"
	Remaining int              // Свободные места
}
