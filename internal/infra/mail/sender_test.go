package mail

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/pkg/logger"
)

func TestSender_BuildMessage(t *testing.T) {
	s := NewSender(Config{FromEmail: "bookings@trattoria.example", FromName: "Trattoria"}, logger.NewNop())
	s.now = func() time.Time { return time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC) }

	raw := string(s.buildMessage("guest@example.com", Message{
		To:       "guest@example.com",
		Subject:  "Reservation Confirmed\r\nBcc: attacker@example.com",
		HTMLBody: "<p>Hello</p>\n<p>Bye</p>",
	}))

	headers, body, found := strings.Cut(raw, "\r\n\r\n")
	require.True(t, found)

	assert.Contains(t, headers, "From: Trattoria <bookings@trattoria.example>")
	assert.Contains(t, headers, "To: guest@example.com")
	assert.Contains(t, headers, "Content-Type: text/html; charset=UTF-8")
	assert.Contains(t, headers, "MIME-Version: 1.0")
	assert.NotContains(t, headers, "\r\nBcc:")
	assert.Equal(t, "<p>Hello</p>\r\n<p>Bye</p>\r\n", body)
}

func TestSender_Send_Disabled(t *testing.T) {
	s := NewSender(Config{Enabled: false}, logger.NewNop())

	err := s.Send(context.Background(), Message{To: "guest@example.com", Subject: "hi", HTMLBody: "<p>x</p>"})

	assert.NoError(t, err)
}

func TestSender_Send_EmptyRecipient(t *testing.T) {
	s := NewSender(Config{Enabled: true, Host: "localhost", Port: 25}, logger.NewNop())

	err := s.Send(context.Background(), Message{To: " \r\n", Subject: "hi"})

	assert.ErrorIs(t, err, ErrInvalidMessage)
}

func TestSender_Send_Unreachable(t *testing.T) {
	s := NewSender(Config{Enabled: true, Host: "127.0.0.1", Port: 1, Timeout: time.Second}, logger.NewNop())

	err := s.Send(context.Background(), Message{To: "guest@example.com", Subject: "hi"})

	assert.ErrorIs(t, err, ErrSend)
}
