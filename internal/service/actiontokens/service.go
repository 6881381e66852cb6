package actiontokens

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	actionTokenRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/actiontoken"
)

const issuer = "reservation-service"

// Область действия токена
const (
	scopeSingle = "single" // одно действие над одной бронью, одноразовый
	scopeBulk   = "bulk"   // одно действие над любыми бронями до истечения срока
	scopeForm   = "form"   // публичная форма бронирования (CSRF)
)

// formAction действие, записываемое в токен публичной формы
const formAction = "submit_reservation"

// Config параметры выдачи токенов
type Config struct {
	Secret    string
	ActionTTL time.Duration
	BulkTTL   time.Duration
	FormTTL   time.Duration
}

// Claims полезная нагрузка токена
type Claims struct {
	Action        string `json:"act"`
	Scope         string `json:"scope"`
	ReservationID int64  `json:"rid,omitempty"`
	jwt.RegisteredClaims
}

// IssuedToken выданный токен
type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
}

// Service выдает и проверяет токены действий администратора и публичной формы.
// Токены подписываются HS256.
type Service struct {
	secret       []byte
	cfg          Config
	usedTokens   UsedTokenRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый сервис токенов
func NewService(cfg Config, usedTokens UsedTokenRepository, logger Logger) *Service {
	return &Service{
		secret:       []byte(cfg.Secret),
		cfg:          cfg,
		usedTokens:   usedTokens,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// IssueAction одноразовый токен на действие над конкретной бронью
func (s *Service) IssueAction(action domain.AdminAction, reservationID int64) (*IssuedToken, error) {
	if !action.IsValid() {
		return nil, ErrInvalidAction
	}
	return s.issue(string(action), scopeSingle, reservationID, s.cfg.ActionTTL)
}

// IssueBulk токен на массовое действие
func (s *Service) IssueBulk(action domain.AdminAction) (*IssuedToken, error) {
	if !action.IsValid() {
		return nil, ErrInvalidAction
	}
	return s.issue(string(action), scopeBulk, 0, s.cfg.BulkTTL)
}

// IssueFormToken токен для отправки публичной формы
func (s *Service) IssueFormToken() (*IssuedToken, error) {
	return s.issue(formAction, scopeForm, 0, s.cfg.FormTTL)
}

func (s *Service) issue(action, scope string, reservationID int64, ttl time.Duration) (*IssuedToken, error) {
	now := s.timeProvider.Now()
	expiresAt := now.Add(ttl)

	claims := Claims{
		Action:        action,
		Scope:         scope,
		ReservationID: reservationID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("%w: sign token: %v", ErrInternal, err)
	}

	return &IssuedToken{Token: signed, ExpiresAt: expiresAt}, nil
}

// VerifyAction проверяет токен действия над бронью.
// Подходит одноразовый токен на это действие и эту бронь (он помечается использованным)
// или bulk-токен на это действие.
func (s *Service) VerifyAction(ctx context.Context, token string, action domain.AdminAction, reservationID int64) error {
	claims, err := s.parse(token)
	if err != nil {
		s.logger.Warn("VerifyAction: invalid token for action=%s reservation=%d: %v", action, reservationID, err)
		return ErrUnauthorized
	}

	if claims.Action != string(action) {
		s.logger.Warn("VerifyAction: token action=%s does not match action=%s", claims.Action, action)
		return ErrUnauthorized
	}

	switch claims.Scope {
	case scopeBulk:
		return nil

	case scopeSingle:
		if claims.ReservationID != reservationID {
			s.logger.Warn("VerifyAction: token issued for reservation=%d, used for reservation=%d",
				claims.ReservationID, reservationID)
			return ErrUnauthorized
		}

		if err := s.usedTokens.Consume(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
			if errors.Is(err, actionTokenRepo.ErrAlreadyUsed) {
				s.logger.Warn("VerifyAction: token jti=%s already used", claims.ID)
				return ErrUnauthorized
			}
			s.logger.Error("VerifyAction: failed to consume token jti=%s: %v", claims.ID, err)
			return fmt.Errorf("%w: consume token: %v", ErrInternal, err)
		}
		return nil
	}

	s.logger.Warn("VerifyAction: unexpected token scope=%s", claims.Scope)
	return ErrUnauthorized
}

// IsBulkToken true, если токен валиден и выдан на массовое действие action
func (s *Service) IsBulkToken(token string, action domain.AdminAction) bool {
	claims, err := s.parse(token)
	if err != nil {
		return false
	}
	return claims.Scope == scopeBulk && claims.Action == string(action)
}

// VerifyFormToken проверяет токен публичной формы
func (s *Service) VerifyFormToken(token string) error {
	claims, err := s.parse(token)
	if err != nil {
		s.logger.Warn("VerifyFormToken: invalid token: %v", err)
		return ErrUnauthorized
	}
	if claims.Scope != scopeForm || claims.Action != formAction {
		return ErrUnauthorized
	}
	return nil
}

func (s *Service) parse(token string) (*Claims, error) {
	if token == "" {
		return nil, errors.New("empty token")
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.timeProvider.Now),
	)
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
