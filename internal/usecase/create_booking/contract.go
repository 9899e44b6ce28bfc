package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SE-RoomBookingService/internal/domain"
	"github.com/m04kA/SE-RoomBookingService/internal/integrations/notification"
	"github.com/m04kA/SE-RoomBookingService/internal/integrations/userservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetBookedSlots(ctx context.Context, roomKey string, date time.Time) ([]string, error)
	CountByUserAndRoom(ctx context.Context, userID int64, roomKey string) (int, error)
}

// SlotService генерация слотов и проверка доступности
type SlotService interface {
	Now() time.Time
	Room(roomKey string) (domain.Room, error)
	ParseDate(dateStr string) (time.Time, error)
	CheckBookingWindow(dateStr string) error
	IsTemporallyValid(slotID, dateStr string) bool
	IsGeneratedSlot(roomKey, dateStr, slotID string) (bool, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetStudentWithGracefulDegradation(ctx context.Context, userID int64) (*userservice.Student, error)
}

// BookedSlotsCache кеш занятых слотов, сбрасывается после создания брони
type BookedSlotsCache interface {
	Invalidate(ctx context.Context, roomKey, date string) error
}

// Notifier асинхронная отправка уведомлений о бронировании
type Notifier interface {
	Notify(event notification.Event) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
