package models

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")

	// ErrInvalidOrder возвращается при некорректном направлении сортировки
	ErrInvalidOrder = errors.New("invalid sort order")
)

// Request модели

// ListRequest фильтры списка бронирований в админке
type ListRequest struct {
	Search   string
	Status   *string
	DateFrom *time.Time
	DateTo   *time.Time
	OrderBy  string
	Order    string // asc | desc
	Page     int
	PerPage  int
}

// Normalize приводит страницу и размер страницы к допустимым значениям
func (r *ListRequest) Normalize() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.PerPage < 1 {
		r.PerPage = domain.DefaultPerPage
	}
	if r.PerPage > domain.MaxPerPage {
		r.PerPage = domain.MaxPerPage
	}
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListRequest) ToDomainFilter() (domain.ReservationFilter, error) {
	r.Normalize()

	filter := domain.ReservationFilter{
		Search:   r.Search,
		DateFrom: r.DateFrom,
		DateTo:   r.DateTo,
		OrderBy:  r.OrderBy,
		Desc:     true,
		Limit:    r.PerPage,
		Offset:   (r.Page - 1) * r.PerPage,
	}

	switch strings.ToLower(r.Order) {
	case "", "desc":
	case "asc":
		filter.Desc = false
	default:
		return filter, ErrInvalidOrder
	}

	if r.Status != nil && *r.Status != "" {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// UpdateRequest редактирование всех полей бронирования администратором
type UpdateRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	PartySize       int    `json:"partySize"`
	SpecialRequests string `json:"specialRequests"`
	Status          string `json:"status"`
	AdminNotes      string `json:"adminNotes"`
}

// ContactInput поля контакта для общей валидации
func (r *UpdateRequest) ContactInput() domain.ContactInput {
	return domain.ContactInput{
		Name:            r.Name,
		Email:           r.Email,
		Phone:           r.Phone,
		SpecialRequests: r.SpecialRequests,
	}
}

// ScheduleInput поля визита для общей валидации
func (r *UpdateRequest) ScheduleInput() domain.ScheduleInput {
	return domain.ScheduleInput{
		Date:      r.Date,
		Time:      r.Time,
		PartySize: strconv.Itoa(r.PartySize),
	}
}

// Response модели

// ReservationResponse бронирование для админки
type ReservationResponse struct {
	ID              int64     `json:"id"`
	Code            string    `json:"code"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone,omitempty"`
	Date            string    `json:"date"` // "2025-10-15"
	Time            string    `json:"time"` // "19:30"
	TimeLabel       string    `json:"timeLabel"`
	PartySize       int       `json:"partySize"`
	SpecialRequests string    `json:"specialRequests,omitempty"`
	Status          string    `json:"status"`
	AdminNotes      string    `json:"adminNotes,omitempty"`
	ReminderSent    bool      `json:"reminderSent"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ReservationListResponse страница списка бронирований
type ReservationListResponse struct {
	Reservations []*ReservationResponse `json:"reservations"`
	Total        int                    `json:"total"`
	Page         int                    `json:"page"`
	PerPage      int                    `json:"perPage"`
	TotalPages   int                    `json:"totalPages"`
}

// StatsResponse показатели дашборда
type StatsResponse struct {
	Today    int `json:"today"`
	Pending  int `json:"pending"`
	ThisWeek int `json:"thisWeek"`
}

// FromDomainReservation конвертирует доменное бронирование в response
func FromDomainReservation(res *domain.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:              res.ID,
		Code:            res.Code,
		Name:            res.Name,
		Email:           res.Email,
		Phone:           res.Phone,
		Date:            res.Date.Format(domain.DateFormat),
		Time:            res.Time.String(),
		TimeLabel:       res.Time.Label(),
		PartySize:       res.PartySize,
		SpecialRequests: res.SpecialRequests,
		Status:          string(res.Status),
		AdminNotes:      res.AdminNotes,
		ReminderSent:    res.ReminderSent,
		CreatedAt:       res.CreatedAt,
		UpdatedAt:       res.UpdatedAt,
	}
}

// FromDomainReservationList собирает страницу списка
func FromDomainReservationList(list []*domain.Reservation, total, page, perPage int) *ReservationListResponse {
	result := &ReservationListResponse{
		Reservations: make([]*ReservationResponse, 0, len(list)),
		Total:        total,
		Page:         page,
		PerPage:      perPage,
		TotalPages:   TotalPages(total, perPage),
	}
	for _, res := range list {
		result.Reservations = append(result.Reservations, FromDomainReservation(res))
	}
	return result
}

// TotalPages количество страниц, не меньше нуля
func TotalPages(total, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

// ToDomainStatus конвертирует строку в domain.ReservationStatus
func ToDomainStatus(status string) (domain.ReservationStatus, error) {
	s := domain.ReservationStatus(strings.ToLower(strings.TrimSpace(status)))
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
