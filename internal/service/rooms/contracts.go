package rooms

import (
	"time"

	"github.com/m04kA/SE-RoomBookingService/internal/domain"
)

// RoomCatalog каталог комнат
type RoomCatalog interface {
	Get(key string) (domain.Room, bool)
	All() []domain.Room
}

// SlotService окно бронирования
type SlotService interface {
	BookingWindow() (time.Time, time.Time)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
