package submit_reservation

import (
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// maxGenerateAttempts попытки подобрать уникальный код или токен
const maxGenerateAttempts = 5

// generateCode публичный код из заглавных букв и цифр
func generateCode() (string, error) {
	var b strings.Builder
	b.Grow(domain.ReservationCodeLength)

	limit := big.NewInt(int64(len(codeAlphabet)))
	for i := 0; i < domain.ReservationCodeLength; i++ {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		b.WriteByte(codeAlphabet[n.Int64()])
	}
	return b.String(), nil
}

// generateEditToken hex-строка длины domain.EditTokenLength из случайных uuid v4
func generateEditToken() (string, error) {
	var b strings.Builder
	b.Grow(domain.EditTokenLength)

	for b.Len() < domain.EditTokenLength {
		id, err := uuid.NewRandom()
		if err != nil {
			return "", err
		}
		b.WriteString(strings.ReplaceAll(id.String(), "-", ""))
	}
	return b.String()[:domain.EditTokenLength], nil
}
