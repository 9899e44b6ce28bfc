package slots

import "errors"

var (
	// ErrUnknownRoom возвращается для ключа комнаты, которого нет в каталоге
	ErrUnknownRoom = errors.New("slots: unknown room")

	// ErrInvalidDate возвращается, если дата не в формате YYYY-MM-DD
	ErrInvalidDate = errors.New("slots: invalid date")

	// ErrDateOutOfWindow возвращается для даты вне окна бронирования [сегодня, сегодня+N]
	ErrDateOutOfWindow = errors.New("slots: date is outside the booking window")
)
