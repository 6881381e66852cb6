package templates

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// TemplateRepository интерфейс хранилища шаблонов
type TemplateRepository interface {
	List(ctx context.Context) ([]*domain.EmailTemplate, error)
	GetByName(ctx context.Context, name string) (*domain.EmailTemplate, error)
	Create(ctx context.Context, tpl *domain.EmailTemplate) (*domain.EmailTemplate, error)
	InsertIfMissing(ctx context.Context, tpl *domain.EmailTemplate) (bool, error)
	Update(ctx context.Context, tpl *domain.EmailTemplate) error
	Delete(ctx context.Context, name string) error
	ExistingNames(ctx context.Context, names []string) (map[string]bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
