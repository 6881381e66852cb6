package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
)

type contextKey string

const adminKey contextKey = "admin"

const (
	msgMissingCredentials = "Authentication required"
	msgInvalidCredentials = "Invalid username or password"
)

// AdminAuth HTTP Basic авторизация администратора, пароль хранится как bcrypt хеш.
// Без заголовка Authorization отвечает 401, с неверными данными 403.
func AdminAuth(username, passwordHash string, logger Logger) func(http.Handler) http.Handler {
	hash := []byte(passwordHash)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			if !ok {
				w.Header().Set("WWW-Authenticate", `Basic realm="reservations"`)
				handlers.RespondUnauthorized(w, msgMissingCredentials)
				return
			}

			userOK := subtle.ConstantTimeCompare([]byte(user), []byte(username)) == 1
			passErr := bcrypt.CompareHashAndPassword(hash, []byte(pass))
			if !userOK || passErr != nil {
				logger.Warn("%s %s - invalid admin credentials for user=%q", r.Method, r.URL.Path, user)
				handlers.RespondForbidden(w, msgInvalidCredentials)
				return
			}

			ctx := context.WithValue(r.Context(), adminKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAdmin имя администратора из контекста
func GetAdmin(ctx context.Context) (string, bool) {
	user, ok := ctx.Value(adminKey).(string)
	return user, ok
}
