package actiontoken

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
)

const tableName = "used_action_tokens"

// Repository хранит идентификаторы уже использованных одноразовых токенов
type Repository struct {
	db txmanager.Executor
}

// NewRepository создает новый экземпляр репозитория использованных токенов
func NewRepository(db txmanager.Executor) *Repository {
	return &Repository{db: db}
}

// Consume помечает токен использованным.
// Повторный вызов с тем же jti возвращает ErrAlreadyUsed.
func (r *Repository) Consume(ctx context.Context, jti string, expiresAt time.Time) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("jti", "expires_at").
		Values(jti, expiresAt).
		Suffix("ON CONFLICT (jti) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Consume - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Consume - execute insert: %v", ErrExecQuery, err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Consume - rows affected: %v", ErrExecQuery, err)
	}
	if inserted == 0 {
		return ErrAlreadyUsed
	}
	return nil
}

// DeleteExpired удаляет записи о токенах, срок которых истек
func (r *Repository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).Where(squirrel.Lt{"expires_at": now}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - execute delete: %v", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - rows affected: %v", ErrExecQuery, err)
	}
	return deleted, nil
}
