package domain

import "time"

// TemplateType адресат письма
type TemplateType string

const (
	TemplateTypeCustomer TemplateType = "customer"
	TemplateTypeAdmin    TemplateType = "admin"
)

func (t TemplateType) IsValid() bool {
	return t == TemplateTypeCustomer || t == TemplateTypeAdmin
}

// Имена обязательных шаблонов
const (
	TemplateCustomerConfirmation = "customer_confirmation"
	TemplateCustomerReminder     = "customer_reminder"
	TemplateAdminNotification    = "admin_notification"
)

// RequiredTemplates шаблоны, без которых не уходят системные письма
var RequiredTemplates = []string{
	TemplateCustomerConfirmation,
	TemplateCustomerReminder,
	TemplateAdminNotification,
}

// EmailTemplate шаблон письма с плейсхолдерами вида {name}
type EmailTemplate struct {
	ID        int64        `db:"id"`
	Name      string       `db:"template_name"`
	Subject   string       `db:"template_subject"`
	Content   string       `db:"template_content"`
	Type      TemplateType `db:"template_type"`
	IsActive  bool         `db:"is_active"`
	CreatedAt time.Time    `db:"created_at"`
	UpdatedAt time.Time    `db:"updated_at"`
}
