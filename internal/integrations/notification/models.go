package notification

import (
	"time"

	"github.com/m04kA/SE-RoomBookingService/internal/domain"
)

// Kind тип уведомления о бронировании
type Kind string

const (
	KindNewBooking       Kind = "NEW BOOKING"
	KindCancelledBooking Kind = "CANCELLED BOOKING"
)

// Event уведомление о создании или отмене бронирования.
// Booking хранится по значению: после постановки в очередь событие не зависит от вызывающего.
type Event struct {
	Kind       Kind
	Booking    domain.Booking
	OccurredAt time.Time
}

// Details человекочитаемое описание события для письма
func (e Event) Details() string {
	if e.Kind == KindNewBooking {
		return "A new booking has been created."
	}
	return "This booking has been cancelled by the student."
}

// Config настройки диспетчера уведомлений
type Config struct {
	QueueSize   int
	SendTimeout time.Duration
}
