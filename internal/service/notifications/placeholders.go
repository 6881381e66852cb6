package notifications

import (
	"html"
	"net/url"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Links базовые адреса для ссылок в письмах
type Links struct {
	PublicURL string
	AdminURL  string
}

// EditLink ссылка для самостоятельного управления бронью
func (l Links) EditLink(token string) string {
	return withQuery(l.PublicURL, map[string]string{
		"pr_action": "edit",
		"token":     token,
	})
}

// AdminLink ссылка на карточку брони в админке
func (l Links) AdminLink(id int64) string {
	return withQuery(l.AdminURL, map[string]string{
		"action":      "view",
		"reservation": strconv.FormatInt(id, 10),
	})
}

func withQuery(base string, params map[string]string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	q := u.Query()
	for k, v := range params {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// BuildPlaceholders значения для подстановки {token} -> value
func BuildPlaceholders(res *domain.Reservation, settings *domain.BookingSettings, links Links) map[string]string {
	return map[string]string{
		"{name}":             res.Name,
		"{email}":            res.Email,
		"{phone}":            res.Phone,
		"{date}":             res.Date.Format(domain.EmailDateFormat),
		"{time}":             res.Time.Label(),
		"{party_size}":       strconv.Itoa(res.PartySize),
		"{special_requests}": res.SpecialRequests,
		"{business_name}":    settings.BusinessName,
		"{reservation_id}":   res.Code,
		"{edit_link}":        links.EditLink(res.EditToken),
		"{admin_link}":       links.AdminLink(res.ID),
	}
}

// RenderBody подставляет значения в HTML, экранируя их
func RenderBody(content string, placeholders map[string]string) string {
	return render(content, placeholders, html.EscapeString)
}

// RenderSubject подставляет значения в тему письма без переводов строк
func RenderSubject(subject string, placeholders map[string]string) string {
	return stripLineBreaks(render(subject, placeholders, stripLineBreaks))
}

func render(text string, placeholders map[string]string, transform func(string) string) string {
	pairs := make([]string, 0, len(placeholders)*2)
	for token, value := range placeholders {
		pairs = append(pairs, token, transform(value))
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

func stripLineBreaks(s string) string {
	return strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(s)
}
