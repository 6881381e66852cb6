package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

const (
	tableName = "reservations"

	uniqueViolationCode = "23505"
)

var columns = []string{
	"id",
	"reservation_code",
	"edit_token",
	"name",
	"email",
	"phone",
	"reservation_date",
	"reservation_time",
	"party_size",
	"special_requests",
	"status",
	"admin_notes",
	"reminder_sent",
	"created_at",
	"updated_at",
}

// sortableColumns колонки, по которым разрешена сортировка списка
var sortableColumns = map[string]struct{}{
	"id":               {},
	"name":             {},
	"email":            {},
	"reservation_date": {},
	"reservation_time": {},
	"party_size":       {},
	"status":           {},
	"created_at":       {},
}

const defaultOrderBy = "reservation_date"

// Repository репозиторий бронирований
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет бронирование и заполняет ID, CreatedAt, UpdatedAt.
// Если в контексте есть транзакция, запрос выполняется в ней.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"reservation_code",
			"edit_token",
			"name",
			"email",
			"phone",
			"reservation_date",
			"reservation_time",
			"party_size",
			"special_requests",
			"status",
			"admin_notes",
		).
		Values(
			res.Code,
			res.EditToken,
			res.Name,
			res.Email,
			res.Phone,
			res.Date.Format(domain.DateFormat),
			res.Time,
			res.PartySize,
			res.SpecialRequests,
			res.Status,
			res.AdminNotes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowxContext(ctx, query, args...).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: Create: %w", ErrDuplicate, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return res, nil
}

// GetByID получает бронирование по внутреннему ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByCode получает бронирование по публичному коду
func (r *Repository) GetByCode(ctx context.Context, code string) (*domain.Reservation, error) {
	return r.getOne(ctx, "GetByCode", squirrel.Eq{"reservation_code": code})
}

// GetByEditToken получает бронирование по токену самостоятельного управления
func (r *Repository) GetByEditToken(ctx context.Context, token string) (*domain.Reservation, error) {
	return r.getOne(ctx, "GetByEditToken", squirrel.Eq{"edit_token": token})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Sqlizer) (*domain.Reservation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).From(tableName).Where(where)
	// Внутри транзакции блокируем строку до конца изменения
	if txmanager.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var res domain.Reservation
	if err := sqlx.GetContext(ctx, executor, &res, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("%w: %s - scan reservation: %w", ErrScanRow, op, err)
	}

	return &res, nil
}

// ExistsByCode проверяет, занят ли публичный код
func (r *Repository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	return r.exists(ctx, "ExistsByCode", squirrel.Eq{"reservation_code": code})
}

// ExistsByEditToken проверяет, занят ли токен
func (r *Repository) ExistsByEditToken(ctx context.Context, token string) (bool, error) {
	return r.exists(ctx, "ExistsByEditToken", squirrel.Eq{"edit_token": token})
}

func (r *Repository) exists(ctx context.Context, op string, where squirrel.Sqlizer) (bool, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").From(tableName).Where(where).ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %s - build count query: %v", ErrBuildQuery, op, err)
	}

	var count int
	if err := sqlx.GetContext(ctx, executor, &count, query, args...); err != nil {
		return false, fmt.Errorf("%w: %s - count: %w", ErrExecQuery, op, err)
	}
	return count > 0, nil
}

// SumPartySize сумма гостей в слоте для указанных статусов.
// excludeID исключает бронирование из подсчета (при переносе брони).
func (r *Repository) SumPartySize(
	ctx context.Context,
	date time.Time,
	slot types.TimeString,
	statuses []domain.ReservationStatus,
	excludeID *int64,
) (int, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select("COALESCE(SUM(party_size), 0)").
		From(tableName).
		Where(squirrel.Eq{"reservation_date": date.Format(domain.DateFormat)}).
		Where(squirrel.Eq{"reservation_time": slot.String()}).
		Where(squirrel.Eq{"status": statusStrings(statuses)})

	if excludeID != nil {
		builder = builder.Where(squirrel.NotEq{"id": *excludeID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: SumPartySize - build query: %v", ErrBuildQuery, err)
	}

	var booked int
	if err := sqlx.GetContext(ctx, executor, &booked, query, args...); err != nil {
		return 0, fmt.Errorf("%w: SumPartySize - execute: %w", ErrExecQuery, err)
	}
	return booked, nil
}

type slotTotal struct {
	Time   types.TimeString `db:"reservation_time"`
	Booked int              `db:"booked"`
}

// SumPartySizeBySlot суммы гостей по всем слотам даты
func (r *Repository) SumPartySizeBySlot(
	ctx context.Context,
	date time.Time,
	statuses []domain.ReservationStatus,
) (map[types.TimeString]int, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("reservation_time", "COALESCE(SUM(party_size), 0) AS booked").
		From(tableName).
		Where(squirrel.Eq{"reservation_date": date.Format(domain.DateFormat)}).
		Where(squirrel.Eq{"status": statusStrings(statuses)}).
		GroupBy("reservation_time").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: SumPartySizeBySlot - build query: %v", ErrBuildQuery, err)
	}

	var rows []slotTotal
	if err := sqlx.SelectContext(ctx, executor, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%w: SumPartySizeBySlot - execute: %w", ErrExecQuery, err)
	}

	totals := make(map[types.TimeString]int, len(rows))
	for _, row := range rows {
		totals[row.Time] = row.Booked
	}
	return totals, nil
}

// List список бронирований для админки и общее количество по фильтру
func (r *Repository) List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, int, error) {
	executor := txmanager.GetExecutor(ctx, r.db)
	where := filterConditions(filter)

	countQuery, countArgs, err := psqlbuilder.Select("COUNT(*)").From(tableName).Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build count query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := sqlx.GetContext(ctx, executor, &total, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("%w: List - count: %w", ErrExecQuery, err)
	}

	builder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(where).
		OrderBy(orderClause(filter.OrderBy, filter.Desc), "id DESC")

	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	var reservations []*domain.Reservation
	if err := sqlx.SelectContext(ctx, executor, &reservations, query, args...); err != nil {
		return nil, 0, fmt.Errorf("%w: List - select: %w", ErrScanRow, err)
	}

	return reservations, total, nil
}

func filterConditions(filter domain.ReservationFilter) squirrel.And {
	where := squirrel.And{}

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + escapeLike(search) + "%"
		where = append(where, squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"email": pattern},
			squirrel.ILike{"reservation_code": pattern},
		})
	}
	if filter.Status != nil {
		where = append(where, squirrel.Eq{"status": string(*filter.Status)})
	}
	if filter.DateFrom != nil {
		where = append(where, squirrel.GtOrEq{"reservation_date": filter.DateFrom.Format(domain.DateFormat)})
	}
	if filter.DateTo != nil {
		where = append(where, squirrel.LtOrEq{"reservation_date": filter.DateTo.Format(domain.DateFormat)})
	}

	return where
}

func orderClause(orderBy string, desc bool) string {
	if _, ok := sortableColumns[orderBy]; !ok {
		orderBy = defaultOrderBy
		desc = true
	}
	if desc {
		return orderBy + " DESC"
	}
	return orderBy + " ASC"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// Update сохраняет все изменяемые поля (редактирование из админки)
func (r *Repository) Update(ctx context.Context, res *domain.Reservation) error {
	return r.update(ctx, "Update", res.ID, map[string]interface{}{
		"name":             res.Name,
		"email":            res.Email,
		"phone":            res.Phone,
		"reservation_date": res.Date.Format(domain.DateFormat),
		"reservation_time": res.Time,
		"party_size":       res.PartySize,
		"special_requests": res.SpecialRequests,
		"status":           res.Status,
		"admin_notes":      res.AdminNotes,
	})
}

// UpdateStatus меняет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	return r.update(ctx, "UpdateStatus", id, map[string]interface{}{
		"status": status,
	})
}

// UpdateSchedule переносит бронь (самостоятельное редактирование гостем)
func (r *Repository) UpdateSchedule(ctx context.Context, id int64, schedule domain.Schedule, specialRequests string) error {
	return r.update(ctx, "UpdateSchedule", id, map[string]interface{}{
		"reservation_date": schedule.Date.Format(domain.DateFormat),
		"reservation_time": schedule.Time,
		"party_size":       schedule.PartySize,
		"special_requests": specialRequests,
	})
}

// MarkReminderSent отмечает, что напоминание отправлено
func (r *Repository) MarkReminderSent(ctx context.Context, id int64) error {
	return r.update(ctx, "MarkReminderSent", id, map[string]interface{}{
		"reminder_sent": true,
	})
}

func (r *Repository) update(ctx context.Context, op string, id int64, fields map[string]interface{}) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		SetMap(fields).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	return checkAffected(result, op)
}

// Delete удаляет бронирование
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	return checkAffected(result, "Delete")
}

// DeleteCancelledBefore удаляет отмененные бронирования, созданные раньше cutoff.
// Удаление безвозвратное.
func (r *Repository) DeleteCancelledBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"status": string(domain.StatusCancelled)}).
		Where(squirrel.Lt{"created_at": cutoff}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteCancelledBefore - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteCancelledBefore - execute delete: %w", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteCancelledBefore - rows affected: %w", ErrExecQuery, err)
	}
	return deleted, nil
}

// ListReminderCandidates подтвержденные брони на дату без отправленного напоминания
func (r *Repository) ListReminderCandidates(ctx context.Context, date time.Time) ([]int64, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id").
		From(tableName).
		Where(squirrel.Eq{"reservation_date": date.Format(domain.DateFormat)}).
		Where(squirrel.Eq{"status": string(domain.StatusApproved)}).
		Where(squirrel.Eq{"reminder_sent": false}).
		OrderBy("reservation_time ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListReminderCandidates - build query: %v", ErrBuildQuery, err)
	}

	var ids []int64
	if err := sqlx.SelectContext(ctx, executor, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("%w: ListReminderCandidates - select: %w", ErrScanRow, err)
	}
	return ids, nil
}

// Stats показатели дашборда: брони на сегодня, ожидающие подтверждения и на ближайшие дни
func (r *Repository) Stats(ctx context.Context, today, weekEnd time.Time) (*domain.ReservationStats, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	pending := string(domain.StatusPending)
	approved := string(domain.StatusApproved)
	day := today.Format(domain.DateFormat)

	query, args, err := psqlbuilder.Select().
		Column(squirrel.Expr("COUNT(*) FILTER (WHERE reservation_date = ? AND status IN (?, ?)) AS today", day, pending, approved)).
		Column(squirrel.Expr("COUNT(*) FILTER (WHERE status = ?) AS pending", pending)).
		Column(squirrel.Expr("COUNT(*) FILTER (WHERE reservation_date BETWEEN ? AND ? AND status IN (?, ?)) AS this_week",
			day, weekEnd.Format(domain.DateFormat), pending, approved)).
		From(tableName).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Stats - build query: %v", ErrBuildQuery, err)
	}

	var stats domain.ReservationStats
	if err := sqlx.GetContext(ctx, executor, &stats, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Stats - scan: %w", ErrScanRow, err)
	}
	return &stats, nil
}

func checkAffected(result sql.Result, op string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - rows affected: %w", ErrExecQuery, op, err)
	}
	if affected == 0 {
		return ErrReservationNotFound
	}
	return nil
}

func statusStrings(statuses []domain.ReservationStatus) []string {
	result := make([]string, 0, len(statuses))
	for _, s := range statuses {
		result = append(result, string(s))
	}
	return result
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode
}
