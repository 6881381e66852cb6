package notifications

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/mail"
)

// TemplateRepository источник шаблонов писем
type TemplateRepository interface {
	GetActiveByName(ctx context.Context, name string) (*domain.EmailTemplate, error)
}

// MailTransport почтовый транспорт
type MailTransport interface {
	Send(ctx context.Context, msg mail.Message) error
}

type Metrics interface {
	IncNotification(template, result string)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
