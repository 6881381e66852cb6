package templates

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/service/templates/models"
)

type TemplateService interface {
	List(ctx context.Context) (*models.TemplateListResponse, error)
	Get(ctx context.Context, name string) (*models.TemplateResponse, error)
	Create(ctx context.Context, req *models.TemplateRequest) (*models.TemplateResponse, error)
	Update(ctx context.Context, name string, req *models.TemplateRequest) (*models.TemplateResponse, error)
	Delete(ctx context.Context, name string) error
	RestoreDefaults(ctx context.Context) (*models.RestoreResponse, error)
	Stats(ctx context.Context) (*models.StatsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
