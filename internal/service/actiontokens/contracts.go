package actiontokens

import (
	"context"
	"time"
)

// UsedTokenRepository хранилище использованных одноразовых токенов
type UsedTokenRepository interface {
	Consume(ctx context.Context, jti string, expiresAt time.Time) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
