package template

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
)

const tableName = "email_templates"

var columns = []string{
	"id",
	"template_name",
	"template_subject",
	"template_content",
	"template_type",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository хранилище шаблонов писем
type Repository struct {
	db txmanager.Executor
}

// NewRepository создает новый экземпляр репозитория шаблонов
func NewRepository(db txmanager.Executor) *Repository {
	return &Repository{db: db}
}

// List все шаблоны, отсортированные по имени
func (r *Repository) List(ctx context.Context) ([]*domain.EmailTemplate, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).From(tableName).OrderBy("template_name ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	var templates []*domain.EmailTemplate
	if err := sqlx.SelectContext(ctx, executor, &templates, query, args...); err != nil {
		return nil, fmt.Errorf("%w: List - select: %v", ErrScanRow, err)
	}
	return templates, nil
}

// GetByName шаблон по имени, независимо от активности
func (r *Repository) GetByName(ctx context.Context, name string) (*domain.EmailTemplate, error) {
	return r.getOne(ctx, "GetByName", squirrel.Eq{"template_name": name})
}

// GetActiveByName активный шаблон по имени
func (r *Repository) GetActiveByName(ctx context.Context, name string) (*domain.EmailTemplate, error) {
	return r.getOne(ctx, "GetActiveByName", squirrel.Eq{"template_name": name, "is_active": true})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.EmailTemplate, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).From(tableName).Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var tpl domain.EmailTemplate
	if err := sqlx.GetContext(ctx, executor, &tpl, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("%w: %s - scan template: %v", ErrScanRow, op, err)
	}
	return &tpl, nil
}

// Create сохраняет новый шаблон
func (r *Repository) Create(ctx context.Context, tpl *domain.EmailTemplate) (*domain.EmailTemplate, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("template_name", "template_subject", "template_content", "template_type", "is_active").
		Values(tpl.Name, tpl.Subject, tpl.Content, tpl.Type, tpl.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowxContext(ctx, query, args...).Scan(&tpl.ID, &tpl.CreatedAt, &tpl.UpdatedAt); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	return tpl, nil
}

// InsertIfMissing добавляет шаблон, только если шаблона с таким именем нет.
// Возвращает true, если строка была вставлена.
func (r *Repository) InsertIfMissing(ctx context.Context, tpl *domain.EmailTemplate) (bool, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("template_name", "template_subject", "template_content", "template_type", "is_active").
		Values(tpl.Name, tpl.Subject, tpl.Content, tpl.Type, tpl.IsActive).
		Suffix("ON CONFLICT (template_name) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: InsertIfMissing - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: InsertIfMissing - execute insert: %v", ErrExecQuery, err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: InsertIfMissing - rows affected: %v", ErrExecQuery, err)
	}
	return inserted > 0, nil
}

// Update обновляет тему, содержимое, тип и активность шаблона по имени
func (r *Repository) Update(ctx context.Context, tpl *domain.EmailTemplate) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("template_subject", tpl.Subject).
		Set("template_content", tpl.Content).
		Set("template_type", tpl.Type).
		Set("is_active", tpl.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"template_name": tpl.Name}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}
	return checkAffected(result, "Update")
}

// Delete удаляет шаблон по имени
func (r *Repository) Delete(ctx context.Context, name string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).Where(squirrel.Eq{"template_name": name}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}
	return checkAffected(result, "Delete")
}

// ExistingNames возвращает, какие из имен уже есть в таблице
func (r *Repository) ExistingNames(ctx context.Context, names []string) (map[string]bool, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("template_name").
		From(tableName).
		Where(squirrel.Eq{"template_name": names}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ExistingNames - build select query: %v", ErrBuildQuery, err)
	}

	var found []string
	if err := sqlx.SelectContext(ctx, executor, &found, query, args...); err != nil {
		return nil, fmt.Errorf("%w: ExistingNames - select: %v", ErrScanRow, err)
	}

	result := make(map[string]bool, len(names))
	for _, name := range names {
		result[name] = false
	}
	for _, name := range found {
		result[name] = true
	}
	return result, nil
}

func checkAffected(result sql.Result, op string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - rows affected: %v", ErrExecQuery, op, err)
	}
	if affected == 0 {
		return ErrTemplateNotFound
	}
	return nil
}
