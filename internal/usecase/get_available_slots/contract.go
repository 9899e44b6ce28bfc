package get_available_slots

import (
	"context"

	"github.com/m04kA/SE-RoomBookingService/internal/domain"
	"github.com/m04kA/SE-RoomBookingService/internal/service/slots"
)

// SlotService генерация слотов и проверка доступности
type SlotService interface {
	Room(roomKey string) (domain.Room, error)
	CheckBookingWindow(dateStr string) error
	GenerateSlots(roomKey, dateStr string) ([]domain.Slot, error)
	FilterSlots(generated []domain.Slot, dateStr string, booked slots.BookedSet) []domain.AvailableSlot
}

// BookedSlotsProvider источник занятых слотов комнаты на дату (кеш + БД)
type BookedSlotsProvider interface {
	GetBookedSlots(ctx context.Context, roomKey, date string) ([]string, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
