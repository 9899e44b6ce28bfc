package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SE-RoomBookingService/internal/domain"
	"github.com/m04kA/SE-RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/SE-RoomBookingService/pkg/psqlbuilder"
)

// pgUniqueViolation код ошибки PostgreSQL для нарушения уникального индекса
const pgUniqueViolation = "23505"

// pgTransactionRollback класс ошибок PostgreSQL, которыми СУБД прерывает одну из
// конкурирующих транзакций (40001 serialization_failure, 40P01 deadlock_detected)
const pgTransactionRollback pq.ErrorClass = "40"

var bookingColumns = []string{
	"id",
	"user_id",
	"room_key",
	"room_name",
	"booking_date",
	"time_slot",
	"student_name",
	"student_id",
	"student_email",
	"created_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её.
// Повторное бронирование того же слота комнаты на ту же дату отсекается
// уникальным индексом и возвращается как ErrSlotTaken.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"user_id",
			"room_key",
			"room_name",
			"booking_date",
			"time_slot",
			"student_name",
			"student_id",
			"student_email",
		).
		Values(
			booking.UserID,
			booking.RoomKey,
			booking.RoomName,
			booking.BookingDate,
			booking.TimeSlot,
			booking.StudentName,
			booking.StudentID,
			booking.StudentEmail,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
	)

	if err != nil {
		return nil, mapCreateError(err)
	}

	booking.CreatedAt = createdAt.Time

	return booking, nil
}

// mapCreateError переводит ошибки драйвера в ошибки репозитория.
// Конкурентная вставка того же слота в сериализуемой транзакции завершается
// не нарушением уникальности, а откатом транзакции: это тоже занятый слот.
func mapCreateError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch {
		case pqErr.Code == pgUniqueViolation:
			return fmt.Errorf("%w: %s", ErrSlotTaken, pqErr.Constraint)
		case pqErr.Code.Class() == pgTransactionRollback:
			return fmt.Errorf("%w: concurrent transaction: %v", ErrSlotTaken, err)
		}
	}
	return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
}

// mapReadError чтение внутри сериализуемой транзакции тоже может быть прервано СУБД
func mapReadError(sentinel error, op string, err error) error {
	if isSerializationFailure(err) {
		return fmt.Errorf("%w: %s: %v", ErrSerializationFailure, op, err)
	}
	return fmt.Errorf("%w: %s: %v", sentinel, op, err)
}

func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code.Class() == pgTransactionRollback
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByUserID получает все бронирования пользователя, упорядоченные по дате и слоту
func (r *Repository) GetByUserID(ctx context.Context, userID int64) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("booking_date ASC", "time_slot ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetBookedSlots возвращает идентификаторы занятых слотов комнаты на дату.
// Внутри транзакции строки блокируются (FOR UPDATE) на время проверки доступности.
func (r *Repository) GetBookedSlots(ctx context.Context, roomKey string, date time.Time) ([]string, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("time_slot").
		From("bookings").
		Where(squirrel.Eq{"room_key": roomKey, "booking_date": date}).
		OrderBy("time_slot ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookedSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapReadError(ErrExecQuery, "GetBookedSlots - execute query", err)
	}
	defer rows.Close()

	slots := make([]string, 0)
	for rows.Next() {
		var slot string
		if err := rows.Scan(&slot); err != nil {
			return nil, fmt.Errorf("%w: GetBookedSlots - scan time_slot: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, mapReadError(ErrScanRow, "GetBookedSlots - rows error", err)
	}

	return slots, nil
}

// CountByUserAndRoom возвращает количество бронирований пользователя в комнате
func (r *Repository) CountByUserAndRoom(ctx context.Context, userID int64, roomKey string) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"user_id": userID, "room_key": roomKey}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountByUserAndRoom - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, mapReadError(ErrScanRow, "CountByUserAndRoom - scan count", err)
	}

	return count, nil
}

// GetByRoomWithFilter получает бронирования комнаты, опционально на конкретную дату.
// Для конкретной даты сортировка по слоту, иначе по дате и слоту.
func (r *Repository) GetByRoomWithFilter(ctx context.Context, filter domain.RoomBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"room_key": filter.RoomKey})

	if filter.Date != nil {
		selectBuilder = selectBuilder.
			Where(squirrel.Eq{"booking_date": *filter.Date}).
			OrderBy("time_slot ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date ASC", "time_slot ASC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByRoomWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByRoomWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// Delete удаляет бронирование пользователя.
// Чужое или несуществующее бронирование одинаково возвращает ErrBookingNotFound.
func (r *Repository) Delete(ctx context.Context, id, userID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
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
		return ErrBookingNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.RoomKey,
		&booking.RoomName,
		&booking.BookingDate,
		&booking.TimeSlot,
		&booking.StudentName,
		&booking.StudentID,
		&booking.StudentEmail,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
