package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Request модели

// TemplateRequest создание или замена шаблона
type TemplateRequest struct {
	Name     string `json:"name"`
	Subject  string `json:"subject"`
	Content  string `json:"content"`
	Type     string `json:"type"`
	IsActive *bool  `json:"isActive,omitempty"` // по умолчанию true
}

// Validate возвращает все ошибки заполнения
func (r *TemplateRequest) Validate() []string {
	var messages []string

	fields := []struct {
		name  string
		value string
	}{
		{"name", r.Name},
		{"subject", r.Subject},
		{"content", r.Content},
		{"type", r.Type},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			messages = append(messages, domain.RequiredMessage(f.name))
		}
	}

	if r.Type != "" && !domain.TemplateType(r.Type).IsValid() {
		messages = append(messages, fmt.Sprintf("Type must be %s or %s", domain.TemplateTypeCustomer, domain.TemplateTypeAdmin))
	}

	return messages
}

// ToDomain конвертирует запрос в доменный шаблон
func (r *TemplateRequest) ToDomain() *domain.EmailTemplate {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return &domain.EmailTemplate{
		Name:     strings.TrimSpace(r.Name),
		Subject:  r.Subject,
		Content:  r.Content,
		Type:     domain.TemplateType(r.Type),
		IsActive: active,
	}
}

// Response модели

// TemplateResponse шаблон письма
type TemplateResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Subject   string    `json:"subject"`
	Content   string    `json:"content"`
	Type      string    `json:"type"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TemplateListResponse список шаблонов
type TemplateListResponse struct {
	Templates []*TemplateResponse `json:"templates"`
	Total     int                 `json:"total"`
}

// RestoreResponse результат восстановления шаблонов по умолчанию
type RestoreResponse struct {
	Inserted []string `json:"inserted"`
}

// TemplateStatus наличие обязательного шаблона
type TemplateStatus struct {
	Name   string `json:"name"`
	Exists bool   `json:"exists"`
}

// StatsResponse статистика обязательных шаблонов
type StatsResponse struct {
	Required []TemplateStatus `json:"required"`
	Missing  int              `json:"missing"`
}

// FromDomainTemplate конвертирует доменный шаблон в ответ
func FromDomainTemplate(tpl *domain.EmailTemplate) *TemplateResponse {
	return &TemplateResponse{
		ID:        tpl.ID,
		Name:      tpl.Name,
		Subject:   tpl.Subject,
		Content:   tpl.Content,
		Type:      string(tpl.Type),
		IsActive:  tpl.IsActive,
		CreatedAt: tpl.CreatedAt,
		UpdatedAt: tpl.UpdatedAt,
	}
}

func FromDomainTemplateList(templates []*domain.EmailTemplate) *TemplateListResponse {
	result := &TemplateListResponse{
		Templates: make([]*TemplateResponse, 0, len(templates)),
		Total:     len(templates),
	}
	for _, tpl := range templates {
		result.Templates = append(result.Templates, FromDomainTemplate(tpl))
	}
	return result
}
