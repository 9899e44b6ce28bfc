package create_booking

import "errors"

var (
	// ErrRoomNotFound возвращается, когда комнаты нет в каталоге
	ErrRoomNotFound = errors.New("create_booking: room not found")

	// ErrStudentNotFound возвращается, когда у пользователя нет профиля студента
	ErrStudentNotFound = errors.New("create_booking: student profile not found")

	// ErrInvalidDate возвращается при дате не в формате YYYY-MM-DD
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateOutOfWindow возвращается для даты вне окна бронирования [сегодня, сегодня+N]
	ErrDateOutOfWindow = errors.New("create_booking: date is outside the booking window")

	// ErrSlotNotAvailable возвращается, когда выбранный слот уже забронирован
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrBookingLimitReached возвращается, когда у студента уже максимум бронирований этой комнаты
	ErrBookingLimitReached = errors.New("create_booking: booking limit for this room reached")

	// ErrInvalidTimeSlot возвращается, когда слот не из списка слотов комнаты на эту дату
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrTooLateToBook возвращается, когда слот уже начался или закончился
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
