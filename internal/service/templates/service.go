package templates

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	templateRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/template"
	"github.com/m04kA/SMC-ReservationService/internal/service/templates/models"
)

// Service управление шаблонами писем из админки
type Service struct {
	templateRepo TemplateRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса шаблонов
func NewService(templateRepo TemplateRepository, logger Logger) *Service {
	return &Service{
		templateRepo: templateRepo,
		logger:       logger,
	}
}

// List все шаблоны
func (s *Service) List(ctx context.Context) (*models.TemplateListResponse, error) {
	templates, err := s.templateRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainTemplateList(templates), nil
}

// Get шаблон по имени
func (s *Service) Get(ctx context.Context, name string) (*models.TemplateResponse, error) {
	tpl, err := s.templateRepo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, templateRepo.ErrTemplateNotFound) {
			s.logger.Warn("Get: template %s not found", name)
			return nil, ErrTemplateNotFound
		}
		s.logger.Error("Get: repository error for template %s: %v", name, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainTemplate(tpl), nil
}

// Create создает новый шаблон
func (s *Service) Create(ctx context.Context, req *models.TemplateRequest) (*models.TemplateResponse, error) {
	if err := domain.NewValidationError(req.Validate()); err != nil {
		return nil, err
	}

	created, err := s.templateRepo.Create(ctx, req.ToDomain())
	if err != nil {
		if errors.Is(err, templateRepo.ErrDuplicate) {
			s.logger.Warn("Create: template %s already exists", req.Name)
			return nil, ErrTemplateExists
		}
		s.logger.Error("Create: repository error for template %s: %v", req.Name, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: template %s created, id=%d", created.Name, created.ID)
	return models.FromDomainTemplate(created), nil
}

// Update заменяет тему, содержимое, тип и активность шаблона name
func (s *Service) Update(ctx context.Context, name string, req *models.TemplateRequest) (*models.TemplateResponse, error) {
	req.Name = name
	if err := domain.NewValidationError(req.Validate()); err != nil {
		return nil, err
	}

	if err := s.templateRepo.Update(ctx, req.ToDomain()); err != nil {
		if errors.Is(err, templateRepo.ErrTemplateNotFound) {
			s.logger.Warn("Update: template %s not found", name)
			return nil, ErrTemplateNotFound
		}
		s.logger.Error("Update: repository error for template %s: %v", name, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: template %s updated", name)
	return s.Get(ctx, name)
}

// Delete удаляет шаблон. Обязательный шаблон можно вернуть через RestoreDefaults.
func (s *Service) Delete(ctx context.Context, name string) error {
	if err := s.templateRepo.Delete(ctx, name); err != nil {
		if errors.Is(err, templateRepo.ErrTemplateNotFound) {
			s.logger.Warn("Delete: template %s not found", name)
			return ErrTemplateNotFound
		}
		s.logger.Error("Delete: repository error for template %s: %v", name, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: template %s deleted", name)
	return nil
}

// RestoreDefaults добавляет отсутствующие обязательные шаблоны.
// Существующие шаблоны не трогаются.
func (s *Service) RestoreDefaults(ctx context.Context) (*models.RestoreResponse, error) {
	result := &models.RestoreResponse{Inserted: []string{}}

	for _, tpl := range DefaultTemplates() {
		inserted, err := s.templateRepo.InsertIfMissing(ctx, tpl)
		if err != nil {
			s.logger.Error("RestoreDefaults: failed to insert template %s: %v", tpl.Name, err)
			return nil, fmt.Errorf("%w: RestoreDefaults - repository error: %v", ErrInternal, err)
		}
		if inserted {
			result.Inserted = append(result.Inserted, tpl.Name)
		}
	}

	s.logger.Info("RestoreDefaults: inserted %d templates", len(result.Inserted))
	return result, nil
}

// Stats какие обязательные шаблоны есть в хранилище
func (s *Service) Stats(ctx context.Context) (*models.StatsResponse, error) {
	existing, err := s.templateRepo.ExistingNames(ctx, domain.RequiredTemplates)
	if err != nil {
		s.logger.Error("Stats: repository error: %v", err)
		return nil, fmt.Errorf("%w: Stats - repository error: %v", ErrInternal, err)
	}

	result := &models.StatsResponse{Required: make([]models.TemplateStatus, 0, len(domain.RequiredTemplates))}
	for _, name := range domain.RequiredTemplates {
		exists := existing[name]
		if !exists {
			result.Missing++
		}
		result.Required = append(result.Required, models.TemplateStatus{Name: name, Exists: exists})
	}
	return result, nil
}
