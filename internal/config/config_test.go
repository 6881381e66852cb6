package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// setAdminHash кладет валидный bcrypt хеш в окружение
func setAdminHash(t *testing.T) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)
	t.Setenv("ADMIN_PASSWORD_HASH", string(hash))
}

func TestLoad_Defaults(t *testing.T) {
	setAdminHash(t)
	path := writeConfig(t, `
[security]
token_secret = "secret"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, domain.DefaultMaxPartySize, cfg.Booking.MaxPartySize)
	assert.Equal(t, domain.DefaultMaxReservationsPerSlot, cfg.Booking.MaxReservationsPerSlot)
	assert.Equal(t, domain.DefaultEditWindowHours, cfg.Booking.EditWindowHours)

	settings, err := cfg.BookingSettings()
	require.NoError(t, err)
	require.Len(t, settings.TimeSlots, 9)
	assert.Equal(t, domain.TimeSlot{Key: "17:00", Label: "5:00 PM"}, settings.TimeSlots[0])
	assert.Equal(t, domain.TimeSlot{Key: "21:00", Label: "9:00 PM"}, settings.TimeSlots[8])
}

func TestLoad_CustomSlotsAndEnvOverride(t *testing.T) {
	setAdminHash(t)
	t.Setenv("TOKEN_SECRET", "from-env")
	t.Setenv("DB_PASSWORD", "db-secret")

	path := writeConfig(t, `
[database]
host = "localhost"
password = "ignored"

[booking]
business_name = "Trattoria"
max_reservations_per_slot = 10

[[booking.time_slots]]
key = "18:00"

[[booking.time_slots]]
key = "19:00"
label = "Seven"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Security.TokenSecret)
	assert.Equal(t, "db-secret", cfg.Database.Password)
	assert.Contains(t, cfg.Database.DSN(), "password=db-secret")

	settings, err := cfg.BookingSettings()
	require.NoError(t, err)
	assert.Equal(t, "Trattoria", settings.BusinessName)
	assert.Equal(t, 10, settings.MaxReservationsPerSlot)
	assert.Equal(t, []domain.TimeSlot{
		{Key: types.TimeString("18:00"), Label: "6:00 PM"},
		{Key: types.TimeString("19:00"), Label: "Seven"},
	}, settings.TimeSlots)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		noHash  bool
	}{
		{
			name:    "missing token secret",
			content: `[booking]` + "\n" + `business_name = "x"`,
		},
		{
			name:    "missing admin password hash",
			content: `[security]` + "\n" + `token_secret = "s"`,
			noHash:  true,
		},
		{
			name:    "admin password hash is plain text",
			content: `[security]` + "\n" + `token_secret = "s"` + "\n" + `admin_password_hash = "secret"`,
			noHash:  true,
		},
		{
			name: "bad slot key",
			content: `
[security]
token_secret = "s"
[[booking.time_slots]]
key = "six"
`,
		},
		{
			name: "duplicate slot",
			content: `
[security]
token_secret = "s"
[[booking.time_slots]]
key = "18:00"
[[booking.time_slots]]
key = "18:00:00"
`,
		},
		{
			name: "unknown timezone",
			content: `
[security]
token_secret = "s"
[booking]
timezone = "Mars/Olympus"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TOKEN_SECRET", "")
			if tt.noHash {
				t.Setenv("ADMIN_PASSWORD_HASH", "")
			} else {
				setAdminHash(t)
			}
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}
