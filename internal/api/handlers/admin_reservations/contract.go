package admin_reservations

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

type ReservationService interface {
	List(ctx context.Context, req *models.ListRequest) (*models.ReservationListResponse, error)
	GetByID(ctx context.Context, id int64) (*models.ReservationResponse, error)
	GetByCode(ctx context.Context, code string) (*models.ReservationResponse, error)
	Update(ctx context.Context, id int64, req *models.UpdateRequest, token string) (*models.ReservationResponse, error)
	Delete(ctx context.Context, id int64, token string) error
	Stats(ctx context.Context) (*models.StatsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
