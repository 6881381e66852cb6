package admin_reservations

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

// ToListRequest разбирает query параметры списка:
// search, status, date_from, date_to, orderby, order, page, per_page
func ToListRequest(query url.Values, loc *time.Location) (*models.ListRequest, error) {
	req := &models.ListRequest{
		Search:  strings.TrimSpace(query.Get("search")),
		OrderBy: query.Get("orderby"),
		Order:   query.Get("order"),
	}

	if status := strings.TrimSpace(query.Get("status")); status != "" {
		req.Status = ptr.Ptr(status)
	}

	var err error
	if req.DateFrom, err = parseDate(query.Get("date_from"), loc); err != nil {
		return nil, err
	}
	if req.DateTo, err = parseDate(query.Get("date_to"), loc); err != nil {
		return nil, err
	}
	if req.Page, err = parseInt(query.Get("page")); err != nil {
		return nil, err
	}
	if req.PerPage, err = parseInt(query.Get("per_page")); err != nil {
		return nil, err
	}

	return req, nil
}

func parseDate(s string, loc *time.Location) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := time.ParseInLocation(domain.DateFormat, s, loc)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func parseInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
