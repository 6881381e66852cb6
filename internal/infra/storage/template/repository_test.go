package template

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewRepository(sqlx.NewDb(db, "postgres")), mock
}

func TestRepository_GetActiveByName(t *testing.T) {
	repo, mock := newMockRepository(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT (.+) FROM email_templates WHERE is_active = \$1 AND template_name = \$2`).
		WithArgs(true, domain.TemplateCustomerConfirmation).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(
			1, domain.TemplateCustomerConfirmation, "Reservation Confirmed - {business_name}", "<p>Hi {name}</p>",
			"customer", true, now, now,
		))

	tpl, err := repo.GetActiveByName(context.Background(), domain.TemplateCustomerConfirmation)

	require.NoError(t, err)
	assert.Equal(t, domain.TemplateTypeCustomer, tpl.Type)
	assert.Equal(t, "<p>Hi {name}</p>", tpl.Content)
}

func TestRepository_GetActiveByName_Missing(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`SELECT (.+) FROM email_templates`).WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.GetActiveByName(context.Background(), "customer_reminder")

	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestRepository_InsertIfMissing(t *testing.T) {
	repo, mock := newMockRepository(t)
	tpl := &domain.EmailTemplate{Name: "customer_reminder", Subject: "s", Content: "c", Type: domain.TemplateTypeCustomer, IsActive: true}

	mock.ExpectExec(`INSERT INTO email_templates .* ON CONFLICT \(template_name\) DO NOTHING`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO email_templates .* ON CONFLICT \(template_name\) DO NOTHING`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	inserted, err := repo.InsertIfMissing(context.Background(), tpl)
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = repo.InsertIfMissing(context.Background(), tpl)
	require.NoError(t, err)
	assert.False(t, inserted)
}

func TestRepository_ExistingNames(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`SELECT template_name FROM email_templates WHERE template_name IN \(\$1,\$2,\$3\)`).
		WillReturnRows(sqlmock.NewRows([]string{"template_name"}).AddRow("admin_notification"))

	got, err := repo.ExistingNames(context.Background(), domain.RequiredTemplates)

	require.NoError(t, err)
	assert.Equal(t, map[string]bool{
		"customer_confirmation": false,
		"customer_reminder":     false,
		"admin_notification":    true,
	}, got)
}

func TestRepository_Delete_NotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(`DELETE FROM email_templates WHERE template_name = \$1`).
		WithArgs("nope").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), "nope"), ErrTemplateNotFound)
}
