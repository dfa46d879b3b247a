package station

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/EVC-BookingService/internal/domain"
	"github.com/m04kA/EVC-BookingService/pkg/dbmetrics"
	"github.com/m04kA/EVC-BookingService/pkg/psqlbuilder"
)

var stationColumns = []string{
	"id",
	"name",
	"location",
	"total_slots",
	"available_slots",
	"charging_type",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со станциями зарядки
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория станций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую станцию
// Счетчик доступности инициализируется полной емкостью
func (r *Repository) Create(ctx context.Context, station *domain.Station) (*domain.Station, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("stations").
		Columns(
			"name",
			"location",
			"total_slots",
			"available_slots",
			"charging_type",
			"status",
		).
		Values(
			station.Name,
			station.Location,
			station.TotalSlots,
			station.AvailableSlots,
			station.ChargingType,
			station.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&station.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	station.CreatedAt = createdAt.Time
	station.UpdatedAt = updatedAt.Time

	return station, nil
}

// GetByID получает станцию по ID
// Внутри транзакции строка блокируется (FOR UPDATE): проверки емкости и
// изменение счетчика доступности не должны гоняться между собой
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Station, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(stationColumns...).
		From("stations").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var station domain.Station
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&station.ID,
		&station.Name,
		&station.Location,
		&station.TotalSlots,
		&station.AvailableSlots,
		&station.ChargingType,
		&station.Status,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrStationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan station: %v", ErrScanRow, err)
	}

	station.CreatedAt = createdAt.Time
	station.UpdatedAt = updatedAt.Time

	return &station, nil
}

// ExistsByName проверяет занятость имени станции
// excludeID исключает саму станцию при переименовании
func (r *Repository) ExistsByName(ctx context.Context, name string, excludeID *int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("1").
		From("stations").
		Where(squirrel.Eq{"name": name}).
		Limit(1)

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsByName - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ExistsByName - scan: %v", ErrScanRow, err)
	}

	return true, nil
}

// List получает станции с фильтрацией по локации, типу зарядки и статусу
func (r *Repository) List(ctx context.Context, filter domain.StationFilter) ([]*domain.Station, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(stationColumns...).
		From("stations").
		OrderBy("name ASC")

	if filter.OnlyActive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": domain.StationActive})
	}
	if filter.Location != nil {
		selectBuilder = selectBuilder.Where(squirrel.ILike{"location": "%" + *filter.Location + "%"})
	}
	if filter.ChargingType != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"charging_type": *filter.ChargingType})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	stations := make([]*domain.Station, 0)
	for rows.Next() {
		var station domain.Station
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&station.ID,
			&station.Name,
			&station.Location,
			&station.TotalSlots,
			&station.AvailableSlots,
			&station.ChargingType,
			&station.Status,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}

		station.CreatedAt = createdAt.Time
		station.UpdatedAt = updatedAt.Time

		stations = append(stations, &station)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return stations, nil
}

// Update перезаписывает атрибуты станции, включая емкость и счетчик доступности
// Используется админским обновлением/resize внутри транзакции
func (r *Repository) Update(ctx context.Context, station *domain.Station) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("stations").
		Set("name", station.Name).
		Set("location", station.Location).
		Set("total_slots", station.TotalSlots).
		Set("available_slots", station.AvailableSlots).
		Set("charging_type", station.ChargingType).
		Set("status", station.Status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": station.ID}).
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
		return ErrStationNotFound
	}

	return nil
}

// Delete удаляет станцию
// Слоты станции удаляются каскадом на уровне схемы
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("stations").
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
		return ErrStationNotFound
	}

	return nil
}

// ConsumeAvailableSlot атомарно уменьшает счетчик доступности на единицу
// Условная запись available_slots > 0 вместо read-modify-write:
// из двух конкурентных подтверждений при одном свободном слоте ровно
// одно получит ErrNoCapacity
func (r *Repository) ConsumeAvailableSlot(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("stations").
		Set("available_slots", squirrel.Expr("available_slots - 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Gt{"available_slots": 0}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ConsumeAvailableSlot - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ConsumeAvailableSlot - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ConsumeAvailableSlot - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrNoCapacity
	}

	return nil
}
