package settings

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/actiontokens"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
)

type stubIssuer struct {
	token *actiontokens.IssuedToken
	err   error
}

func (s *stubIssuer) IssueFormToken() (*actiontokens.IssuedToken, error) {
	return s.token, s.err
}

func TestHandler_HandleSettings(t *testing.T) {
	loc := time.FixedZone("Europe/Rome", 2*60*60)

	h := NewHandler(&domain.BookingSettings{
		BusinessName:      "Trattoria",
		MaxPartySize:      8,
		BookingWindowDays: 30,
		EditWindowHours:   24,
		TimeSlots:         []domain.TimeSlot{{Key: "18:00", Label: "6:00 PM"}},
		FormFields:        []string{"name", "email"},
		Location:          loc,
	}, &stubIssuer{}, logger.NewNop())

	rec := httptest.NewRecorder()
	h.HandleSettings(rec, httptest.NewRequest(http.MethodGet, "/api/v1/settings", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"businessName": "Trattoria",
		"maxPartySize": 8,
		"bookingWindowDays": 30,
		"editWindowHours": 24,
		"timezone": "Europe/Rome",
		"timeSlots": [{"key": "18:00", "label": "6:00 PM"}],
		"formFields": ["name", "email"]
	}`, rec.Body.String())
}

func TestHandler_HandleFormToken(t *testing.T) {
	expires := time.Date(2025, 10, 15, 19, 0, 0, 0, time.UTC)

	t.Run("issued", func(t *testing.T) {
		h := NewHandler(&domain.BookingSettings{}, &stubIssuer{
			token: &actiontokens.IssuedToken{Token: "form-jwt", ExpiresAt: expires},
		}, logger.NewNop())

		rec := httptest.NewRecorder()
		h.HandleFormToken(rec, httptest.NewRequest(http.MethodGet, "/api/v1/form-token", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"token":"form-jwt","expiresAt":"2025-10-15T19:00:00Z"}`, rec.Body.String())
	})

	t.Run("signing failure", func(t *testing.T) {
		h := NewHandler(&domain.BookingSettings{}, &stubIssuer{err: errors.New("boom")}, logger.NewNop())

		rec := httptest.NewRecorder()
		h.HandleFormToken(rec, httptest.NewRequest(http.MethodGet, "/api/v1/form-token", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
