package templates

import "github.com/m04kA/SMC-ReservationService/internal/domain"

// DefaultTemplates шаблоны, которые создаются при восстановлении
func DefaultTemplates() []*domain.EmailTemplate {
	return []*domain.EmailTemplate{
		{
			Name:     domain.TemplateCustomerConfirmation,
			Subject:  "Reservation Confirmed - {business_name}",
			Content:  customerConfirmationContent,
			Type:     domain.TemplateTypeCustomer,
			IsActive: true,
		},
		{
			Name:     domain.TemplateCustomerReminder,
			Subject:  "Reservation Reminder - Today at {time}",
			Content:  customerReminderContent,
			Type:     domain.TemplateTypeCustomer,
			IsActive: true,
		},
		{
			Name:     domain.TemplateAdminNotification,
			Subject:  "New Reservation Alert - {name} for {date} at {time}",
			Content:  adminNotificationContent,
			Type:     domain.TemplateTypeAdmin,
			IsActive: true,
		},
	}
}

const customerConfirmationContent = `<h2>Thank you, {name}!</h2>
<p>We have received your reservation request at <strong>{business_name}</strong>.</p>
<table>
  <tr><td>Confirmation code</td><td><strong>{reservation_id}</strong></td></tr>
  <tr><td>Date</td><td>{date}</td></tr>
  <tr><td>Time</td><td>{time}</td></tr>
  <tr><td>Guests</td><td>{party_size}</td></tr>
  <tr><td>Special requests</td><td>{special_requests}</td></tr>
</table>
<p>We will contact you shortly to confirm.</p>
<p>Need to change plans? <a href="{edit_link}">Manage your reservation</a>.</p>`

const customerReminderContent = `<h2>See you today, {name}!</h2>
<p>This is a reminder of your reservation at <strong>{business_name}</strong>
today, {date}, at <strong>{time}</strong> for {party_size} guests.</p>
<p>Confirmation code: <strong>{reservation_id}</strong></p>
<p>If you cannot make it, please <a href="{edit_link}">cancel your reservation</a>.</p>`

const adminNotificationContent = `<h2>New reservation request</h2>
<table>
  <tr><td>Name</td><td>{name}</td></tr>
  <tr><td>Email</td><td>{email}</td></tr>
  <tr><td>Phone</td><td>{phone}</td></tr>
  <tr><td>Date</td><td>{date}</td></tr>
  <tr><td>Time</td><td>{time}</td></tr>
  <tr><td>Guests</td><td>{party_size}</td></tr>
  <tr><td>Special requests</td><td>{special_requests}</td></tr>
  <tr><td>Code</td><td>{reservation_id}</td></tr>
</table>
<p><a href="{admin_link}">Open in dashboard</a></p>`
