package slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SE-RoomBookingService/internal/domain"
)

// Service генерация слотов, проверка доступности и классификация истории бронирований.
// Не хранит состояния между вызовами: "сейчас" читается на каждом вызове.
type Service struct {
	catalog      *domain.RoomCatalog
	cfg          Config
	timeProvider TimeProvider
}

// NewService создаёт сервис слотов поверх каталога комнат
func NewService(catalog *domain.RoomCatalog, cfg Config, timeProvider TimeProvider) *Service {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	return &Service{
		catalog:      catalog,
		cfg:          cfg,
		timeProvider: timeProvider,
	}
}

// Now текущее время сервиса
func (s *Service) Now() time.Time {
	return s.timeProvider.Now()
}

// Room возвращает комнату из каталога
func (s *Service) Room(roomKey string) (domain.Room, error) {
	room, ok := s.catalog.Get(roomKey)
	if !ok {
		return domain.Room{}, fmt.Errorf("%w: %q", ErrUnknownRoom, roomKey)
	}
	return room, nil
}

// GenerateSlots возвращает упорядоченный список слотов комнаты на дату.
//
// Шкафчики: Locker 1..N независимо от даты.
// Почасовые комнаты: по слоту на каждый час от стартового до LastStartHour включительно.
// Стартовый час для сегодняшней даты - ближайший целый час после текущего момента
// (14:18 -> 15, 14:00:00 -> 14), для остальных дат - FirstHour.
// Если стартовый час больше LastStartHour, список пуст (это не ошибка).
func (s *Service) GenerateSlots(roomKey, dateStr string) ([]domain.Slot, error) {
	room, err := s.Room(roomKey)
	if err != nil {
		return nil, err
	}

	if room.IsLocker() {
		result := make([]domain.Slot, 0, room.LockerCount)
		for n := 1; n <= room.LockerCount; n++ {
			result = append(result, domain.Slot{ID: domain.LockerSlot(n)})
		}
		return result, nil
	}

	now := s.timeProvider.Now()
	date, err := parseDate(dateStr, now.Location())
	if err != nil {
		return nil, err
	}

	startHour := s.cfg.FirstHour
	if isSameDay(date, now) {
		startHour = now.Hour()
		if now.Minute() > 0 || now.Second() > 0 {
			startHour++
		}
	}

	result := make([]domain.Slot, 0)
	for h := startHour; h <= s.cfg.LastStartHour && h <= 23; h++ {
		result = append(result, domain.Slot{ID: domain.TimedSlot(h)})
	}
	return result, nil
}

// IsGeneratedSlot проверяет, что slotID входит в список слотов комнаты на дату
// в точности в каноническом формате
func (s *Service) IsGeneratedSlot(roomKey, dateStr, slotID string) (bool, error) {
	generated, err := s.GenerateSlots(roomKey, dateStr)
	if err != nil {
		return false, err
	}
	for _, slot := range generated {
		if slot.Label() == slotID {
			return true, nil
		}
	}
	return false, nil
}

// BookingWindow возвращает первую и последнюю допустимые даты бронирования
func (s *Service) BookingWindow() (time.Time, time.Time) {
	now := s.timeProvider.Now()
	today := startOfDay(now)
	return today, today.AddDate(0, 0, s.cfg.WindowDays)
}

// CheckBookingWindow проверяет, что дата лежит в окне [сегодня, сегодня+WindowDays].
// Вызывается до проверки слотов.
func (s *Service) CheckBookingWindow(dateStr string) error {
	now := s.timeProvider.Now()
	date, err := parseDate(dateStr, now.Location())
	if err != nil {
		return err
	}

	first, last := s.BookingWindow()
	if date.Before(first) || date.After(last) {
		return fmt.Errorf("%w: %s not in [%s, %s]", ErrDateOutOfWindow,
			dateStr, first.Format(domain.DateFormat), last.Format(domain.DateFormat))
	}
	return nil
}

// ParseDate разбирает дату YYYY-MM-DD в часовом поясе сервиса
func (s *Service) ParseDate(dateStr string) (time.Time, error) {
	return parseDate(dateStr, s.timeProvider.Now().Location())
}

// parseDate разбирает YYYY-MM-DD в полночь указанного пояса
func parseDate(dateStr string, loc *time.Location) (time.Time, error) {
	date, err := time.ParseInLocation(domain.DateFormat, dateStr, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, dateStr)
	}
	return date, nil
}

// startOfDay полночь дня t в его часовом поясе
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// nextFullHour ближайшая граница часа не раньше now:
// 09:45 -> 10:00, 10:00:00 -> 10:00
func nextFullHour(now time.Time) time.Time {
	boundary := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), 0, 0, 0, now.Location())
	if now.Minute() > 0 || now.Second() > 0 {
		boundary = boundary.Add(time.Hour)
	}
	return boundary
}
