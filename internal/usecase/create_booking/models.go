package create_booking

import (
	"time"
)

// Config ограничения на создание бронирований
type Config struct {
	// MaxBookingsPerRoom максимум бронирований одного студента в одной комнате, 0 - без ограничения
	MaxBookingsPerRoom int
}

// Request модель запроса на создание бронирования
type Request struct {
	UserID   int64  // ID пользователя
	RoomKey  string // ключ комнаты
	Date     string // дата YYYY-MM-DD
	TimeSlot string // идентификатор слота, например "10-11am" или "Locker 2"
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          int64     // ID созданного бронирования
	UserID      int64     // ID пользователя
	RoomKey     string    // ключ комнаты
	RoomName    string    // название комнаты
	BookingDate time.Time // дата бронирования
	TimeSlot    string    // идентификатор слота

	// Денормализованные данные студента
	StudentName  string
	StudentID    string
	StudentEmail string

	CreatedAt time.Time // время создания
}
