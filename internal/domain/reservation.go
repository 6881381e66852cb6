package domain

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// ReservationStatus статус бронирования
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusApproved  ReservationStatus = "approved"
	StatusDeclined  ReservationStatus = "declined"
	StatusCancelled ReservationStatus = "cancelled"
)

// CapacityStatuses статусы, которые занимают места в слоте
var CapacityStatuses = []ReservationStatus{
	StatusPending,
	StatusApproved,
}

// IsValid проверяет, что статус входит в перечисление
func (s ReservationStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusDeclined, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal true для declined и cancelled
func (s ReservationStatus) IsTerminal() bool {
	return s == StatusDeclined || s == StatusCancelled
}

// Reservation бронирование столика
type Reservation struct {
	ID              int64             `db:"id"`
	Code            string            `db:"reservation_code"` // публичный код подтверждения
	EditToken       string            `db:"edit_token"`
	Name            string            `db:"name"`
	Email           string            `db:"email"`
	Phone           string            `db:"phone"`
	Date            time.Time         `db:"reservation_date"`
	Time            types.TimeString  `db:"reservation_time"`
	PartySize       int               `db:"party_size"`
	SpecialRequests string            `db:"special_requests"`
	Status          ReservationStatus `db:"status"`
	AdminNotes      string            `db:"admin_notes"`
	ReminderSent    bool              `db:"reminder_sent"`
	CreatedAt       time.Time         `db:"created_at"`
	UpdatedAt       time.Time         `db:"updated_at"`
}

// IsActive true, если бронирование занимает место в слоте
func (r *Reservation) IsActive() bool {
	return r.Status == StatusPending || r.Status == StatusApproved
}

// ScheduledAt дата и время визита в часовом поясе ресторана
func (r *Reservation) ScheduledAt(loc *time.Location) (time.Time, error) {
	return r.Time.On(r.Date, loc)
}

// CanSelfServiceModify гостю можно отменять и менять бронь только раньше, чем за
// windowHours до визита
func (r *Reservation) CanSelfServiceModify(now time.Time, windowHours int, loc *time.Location) bool {
	scheduled, err := r.ScheduledAt(loc)
	if err != nil {
		return false
	}
	deadline := now.Add(time.Duration(windowHours) * time.Hour)
	return scheduled.After(deadline)
}

// ReservationStats показатели для дашборда администратора
type ReservationStats struct {
	Today    int `db:"today"`
	Pending  int `db:"pending"`
	ThisWeek int `db:"this_week"`
}

// ReservationFilter фильтр списка бронирований в админке
type ReservationFilter struct {
	Search   string             // по имени, email или коду
	Status   *ReservationStatus // nil - все статусы
	DateFrom *time.Time
	DateTo   *time.Time
	OrderBy  string
	Desc     bool
	Limit    int
	Offset   int
}
