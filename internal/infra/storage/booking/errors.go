package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotTaken возвращается, когда слот на эту дату уже забронирован (уникальный индекс)
	ErrSlotTaken = errors.New("booking.repository: slot already booked")

	// ErrSerializationFailure возвращается, когда СУБД прервала транзакцию из-за конкурентной
	ErrSerializationFailure = errors.New("booking.repository: transaction aborted by concurrent transaction")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
