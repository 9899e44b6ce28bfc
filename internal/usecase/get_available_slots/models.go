package get_available_slots

import (
	"github.com/m04kA/SE-RoomBookingService/internal/domain"
)

// Request модель запроса на получение слотов комнаты
type Request struct {
	UserID  int64  // ID пользователя (для логирования, не влияет на результат)
	RoomKey string // ключ комнаты из каталога
	Date    string // дата YYYY-MM-DD
}

// Response модель ответа со списком слотов
type Response struct {
	Room  domain.Room
	Date  string
	Slots []domain.AvailableSlot

	// BookedSlotsUnavailable занятые слоты получить не удалось,
	// доступность посчитана по пустому множеству
	BookedSlotsUnavailable bool
}
