package slot

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/EVC-BookingService/internal/domain"
	"github.com/m04kA/EVC-BookingService/pkg/dbmetrics"
	"github.com/m04kA/EVC-BookingService/pkg/psqlbuilder"
)

var slotColumns = []string{
	"id",
	"station_id",
	"slot_number",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со слотами станций
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает один слот
func (r *Repository) Create(ctx context.Context, slot *domain.Slot) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("slots").
		Columns("station_id", "slot_number", "status").
		Values(slot.StationID, slot.SlotNumber, slot.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&slot.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return slot, nil
}

// BulkCreate создает слоты с указанными номерами в статусе available
// Используется при создании станции (1..N) и при расширении емкости
func (r *Repository) BulkCreate(ctx context.Context, stationID int64, numbers []int) error {
	if len(numbers) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("slots").
		Columns("station_id", "slot_number", "status")

	for _, number := range numbers {
		insertBuilder = insertBuilder.Values(stationID, number, domain.SlotAvailable)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: BulkCreate - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: BulkCreate - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает слот по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var slot domain.Slot
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&slot.ID,
		&slot.StationID,
		&slot.SlotNumber,
		&slot.Status,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return &slot, nil
}

// ListByStation получает слоты станции, отсортированные по номеру
func (r *Repository) ListByStation(ctx context.Context, stationID int64) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"station_id": stationID}).
		OrderBy("slot_number ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByStation - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByStation - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// List получает все слоты, отсортированные по станции и номеру
func (r *Repository) List(ctx context.Context) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("slots").
		OrderBy("station_id ASC", "slot_number ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// CountByStation возвращает количество провижененных слотов станции
func (r *Repository) CountByStation(ctx context.Context, stationID int64) (int, error) {
	return r.count(ctx, squirrel.Eq{"station_id": stationID})
}

// CountUnavailableByStation возвращает количество слотов станции
// в статусах occupied/maintenance
// Используется проверкой нижней границы при уменьшении емкости
func (r *Repository) CountUnavailableByStation(ctx context.Context, stationID int64) (int, error) {
	return r.count(ctx, squirrel.And{
		squirrel.Eq{"station_id": stationID},
		squirrel.NotEq{"status": domain.SlotAvailable},
	})
}

// ExistsNumber проверяет занятость номера слота на станции
// excludeID исключает сам слот при перенумерации
func (r *Repository) ExistsNumber(ctx context.Context, stationID int64, number int, excludeID *int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("1").
		From("slots").
		Where(squirrel.Eq{"station_id": stationID}).
		Where(squirrel.Eq{"slot_number": number}).
		Limit(1)

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsNumber - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ExistsNumber - scan: %v", ErrScanRow, err)
	}

	return true, nil
}

// Update перезаписывает номер и статус слота
func (r *Repository) Update(ctx context.Context, slot *domain.Slot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("slot_number", slot.SlotNumber).
		Set("status", slot.Status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slot.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// Delete удаляет слот
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// DeleteTopAvailable удаляет n слотов станции в статусе available,
// начиная с наибольших номеров. Слоты в статусах occupied/maintenance
// не затрагиваются. Возвращает количество удаленных слотов
func (r *Repository) DeleteTopAvailable(ctx context.Context, stationID int64, n int) (int, error) {
	if n <= 0 {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slots").
		Where(squirrel.Expr(
			"id IN (SELECT id FROM slots WHERE station_id = ? AND status = ? ORDER BY slot_number DESC LIMIT ?)",
			stationID, domain.SlotAvailable, n,
		)).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteTopAvailable - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteTopAvailable - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteTopAvailable - get rows affected: %v", ErrExecQuery, err)
	}

	return int(rowsAffected), nil
}

func (r *Repository) count(ctx context.Context, cond squirrel.Sqlizer) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("slots").
		Where(cond).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: count - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: count - scan: %v", ErrScanRow, err)
	}

	return count, nil
}

// scanSlots сканирует результаты запроса в слайс слотов
func (r *Repository) scanSlots(rows *sql.Rows) ([]*domain.Slot, error) {
	slots := make([]*domain.Slot, 0)

	for rows.Next() {
		var slot domain.Slot
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&slot.ID,
			&slot.StationID,
			&slot.SlotNumber,
			&slot.Status,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}

		slot.CreatedAt = createdAt.Time
		slot.UpdatedAt = updatedAt.Time

		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}
