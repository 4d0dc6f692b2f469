package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

const tableName = "appointments"

var columns = []string{
	"id",
	"client_name",
	"phone",
	"email",
	"appointment_date",
	"start_time",
	"service_id",
	"staff_id",
	"resource",
	"state",
	"created_at",
	"final_price",
	"notes",
	"payment_state",
	"actual_duration_minutes",
}

// Repository хранилище записей в PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет запись и присваивает ей ID из последовательности
// CreatedAt должен быть заполнен вызывающим
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(columns[1:]...).
		Values(
			appt.ClientName,
			appt.Phone,
			appt.Email,
			appt.DateKey(),
			appt.StartTime,
			appt.ServiceID,
			appt.StaffID,
			appt.Resource,
			appt.State,
			appt.CreatedAt,
			appt.FinalPrice,
			appt.Notes,
			appt.PaymentState,
			appt.ActualDurationMinutes,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	created := appt.Clone()
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&created.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return created, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return appt, nil
}

// List возвращает записи по фильтру, отсортированные по дате, времени и ID
// Внутри транзакции выборка по конкретной дате блокирует строки (FOR UPDATE)
func (r *Repository) List(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		OrderBy("appointment_date ASC", "start_time ASC", "id ASC")

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"appointment_date": filter.Date.Format(domain.DateFormat)})
	}
	if filter.StaffID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"staff_id": *filter.StaffID})
	}

	if dbmetrics.IsInTransaction(ctx) && filter.Date != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
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

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}

// UpdateState обновляет состояние записи
func (r *Repository) UpdateState(ctx context.Context, id int64, state domain.AppointmentState) error {
	return r.update(ctx, "UpdateState", id, map[string]interface{}{"state": state})
}

// UpdateDetails обновляет поля, заполняемые персоналом; nil-поля не изменяются
func (r *Repository) UpdateDetails(ctx context.Context, id int64, details domain.AppointmentDetails) error {
	values := make(map[string]interface{})
	if details.FinalPrice != nil {
		values["final_price"] = *details.FinalPrice
	}
	if details.Notes != nil {
		values["notes"] = *details.Notes
	}
	if details.PaymentState != nil {
		values["payment_state"] = *details.PaymentState
	}
	if details.ActualDurationMinutes != nil {
		values["actual_duration_minutes"] = *details.ActualDurationMinutes
	}

	if len(values) == 0 {
		// Нечего обновлять, но существование записи все равно проверяем
		_, err := r.GetByID(ctx, id)
		return err
	}

	return r.update(ctx, "UpdateDetails", id, values)
}

// Delete удаляет запись
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "Delete")
}

// LockDate берет advisory-блокировку на дату до конца текущей транзакции
// Вне транзакции ничего не делает
func (r *Repository) LockDate(ctx context.Context, date time.Time) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", tableName+":"+date.Format(domain.DateFormat)); err != nil {
		return fmt.Errorf("%w: LockDate - advisory lock: %v", ErrExecQuery, err)
	}
	return nil
}

func (r *Repository) update(ctx context.Context, op string, id int64, values map[string]interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		SetMap(values).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	return checkAffected(result, op)
}

func checkAffected(result sql.Result, op string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanAppointment сканирует строку в порядке columns
func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var appt domain.Appointment
	var date time.Time

	err := row.Scan(
		&appt.ID,
		&appt.ClientName,
		&appt.Phone,
		&appt.Email,
		&date,
		&appt.StartTime,
		&appt.ServiceID,
		&appt.StaffID,
		&appt.Resource,
		&appt.State,
		&appt.CreatedAt,
		&appt.FinalPrice,
		&appt.Notes,
		&appt.PaymentState,
		&appt.ActualDurationMinutes,
	)
	if err != nil {
		return nil, err
	}

	// DATE приходит в UTC, переносим календарную дату в локальную зону
	y, m, d := date.Date()
	appt.Date = time.Date(y, m, d, 0, 0, 0, 0, time.Local)

	return &appt, nil
}
