package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SE-RoomBookingService/internal/domain"
	"github.com/m04kA/SE-RoomBookingService/internal/integrations/notification"
	"github.com/m04kA/SE-RoomBookingService/internal/service/slots"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64) ([]*domain.Booking, error)
	GetBookedSlots(ctx context.Context, roomKey string, date time.Time) ([]string, error)
	GetByRoomWithFilter(ctx context.Context, filter domain.RoomBookingsFilter) ([]*domain.Booking, error)
	Delete(ctx context.Context, id, userID int64) error
}

// BookedSlotsCache кеш занятых слотов комнаты на дату
type BookedSlotsCache interface {
	Get(ctx context.Context, roomKey, date string) ([]string, bool, error)
	Set(ctx context.Context, roomKey, date string, slots []string) error
	Invalidate(ctx context.Context, roomKey, date string) error
}

// SlotService каталог комнат и классификация истории
type SlotService interface {
	Now() time.Time
	Room(roomKey string) (domain.Room, error)
	ParseDate(dateStr string) (time.Time, error)
	Classify(bookings []*domain.Booking) slots.Classified
}

// Notifier асинхронная отправка уведомлений о бронировании
type Notifier interface {
	Notify(event notification.Event) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
