package slots

import (
	"time"

	"github.com/m04kA/SE-RoomBookingService/internal/domain"
)

// IsSlotSelectable слот можно выбрать, если он не забронирован и ещё не начался
func (s *Service) IsSlotSelectable(slotID, dateStr string, booked BookedSet) bool {
	if booked.Contains(slotID) {
		return false
	}
	return s.IsTemporallyValid(slotID, dateStr)
}

// IsTemporallyValid проверяет, что слот ещё не начался.
//
// Шкафчики и метки без читаемого часа всегда валидны.
// Слоты с началом позже LastStartHour невалидны.
// Сегодня: начало слота должно быть не раньше ближайшей границы часа.
// Будущие даты валидны, прошедшие - нет.
func (s *Service) IsTemporallyValid(slotID, dateStr string) bool {
	if domain.IsLockerLabel(slotID) {
		return true
	}

	id, ok := domain.ParseSlotID(slotID)
	if !ok {
		return true
	}

	if id.Hour > s.cfg.LastStartHour {
		return false
	}

	now := s.timeProvider.Now()
	date, err := parseDate(dateStr, now.Location())
	if err != nil {
		return false
	}

	today := startOfDay(now)
	switch {
	case isSameDay(date, now):
		return !slotStart(date, id.Hour).Before(nextFullHour(now))
	case date.Before(today):
		return false
	default:
		return true
	}
}

// FilterSlots помечает каждый сгенерированный слот как забронированный и/или доступный для выбора.
// При ошибке получения забронированных слотов вызывающий код передаёт пустое множество.
func (s *Service) FilterSlots(generated []domain.Slot, dateStr string, booked BookedSet) []domain.AvailableSlot {
	result := make([]domain.AvailableSlot, len(generated))
	for i, slot := range generated {
		label := slot.Label()
		result[i] = domain.AvailableSlot{
			Slot:       slot,
			Booked:     booked.Contains(label),
			Selectable: s.IsSlotSelectable(label, dateStr, booked),
		}
	}
	return result
}

// slotStart момент начала часового слота в день date
func slotStart(date time.Time, hour int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), hour, 0, 0, 0, date.Location())
}
