package notifications

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/mail"
	templateRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/template"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
)

// Dispatcher собирает письмо из шаблона и отдает его почтовому транспорту.
// Одна попытка, без очередей и повторов.
type Dispatcher struct {
	templates TemplateRepository
	transport MailTransport
	settings  *domain.BookingSettings
	links     Links
	metrics   Metrics
	logger    Logger
}

// NewDispatcher создает новый диспетчер уведомлений
func NewDispatcher(
	templates TemplateRepository,
	transport MailTransport,
	settings *domain.BookingSettings,
	links Links,
	metrics Metrics,
	logger Logger,
) *Dispatcher {
	return &Dispatcher{
		templates: templates,
		transport: transport,
		settings:  settings,
		links:     links,
		metrics:   metrics,
		logger:    logger,
	}
}

// Send отправляет письмо по шаблону templateName на адрес recipient.
// nil означает, что письмо принято транспортом.
func (d *Dispatcher) Send(ctx context.Context, templateName string, res *domain.Reservation, recipient string) error {
	if strings.TrimSpace(recipient) == "" {
		d.metrics.IncNotification(templateName, metrics.ResultSkipped)
		return ErrNoRecipient
	}

	tpl, err := d.templates.GetActiveByName(ctx, templateName)
	if err != nil {
		if errors.Is(err, templateRepo.ErrTemplateNotFound) {
			d.logger.Warn("Notifications: template %s is missing or inactive, reservation id=%d", templateName, res.ID)
			d.metrics.IncNotification(templateName, metrics.ResultSkipped)
			return ErrTemplateNotFound
		}
		d.logger.Error("Notifications: failed to load template %s: %v", templateName, err)
		d.metrics.IncNotification(templateName, metrics.ResultFailed)
		return fmt.Errorf("%w: load template %s: %v", ErrInternal, templateName, err)
	}

	placeholders := BuildPlaceholders(res, d.settings, d.links)
	msg := mail.Message{
		To:       recipient,
		Subject:  RenderSubject(tpl.Subject, placeholders),
		HTMLBody: RenderBody(tpl.Content, placeholders),
	}

	if err := d.transport.Send(ctx, msg); err != nil {
		d.logger.Error("Notifications: failed to send %s to %s for reservation id=%d: %v",
			templateName, recipient, res.ID, err)
		d.metrics.IncNotification(templateName, metrics.ResultFailed)
		return fmt.Errorf("%w: %s: %v", ErrDeliveryFailed, templateName, err)
	}

	d.logger.Info("Notifications: %s sent for reservation id=%d", templateName, res.ID)
	d.metrics.IncNotification(templateName, metrics.ResultSent)
	return nil
}

// SendCustomerConfirmation письмо гостю о принятой заявке
func (d *Dispatcher) SendCustomerConfirmation(ctx context.Context, res *domain.Reservation) error {
	return d.Send(ctx, domain.TemplateCustomerConfirmation, res, res.Email)
}

// SendAdminNotification уведомление ресторана о новой заявке
func (d *Dispatcher) SendAdminNotification(ctx context.Context, res *domain.Reservation) error {
	return d.Send(ctx, domain.TemplateAdminNotification, res, d.settings.BusinessEmail)
}

// SendReminder напоминание гостю в день визита
func (d *Dispatcher) SendReminder(ctx context.Context, res *domain.Reservation) error {
	return d.Send(ctx, domain.TemplateCustomerReminder, res, res.Email)
}
