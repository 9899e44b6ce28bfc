package slots

import (
	"sort"
	"time"

	"github.com/m04kA/SE-RoomBookingService/internal/domain"
)

// IsBookingInPast бронирование в прошлом, если его слот уже начался.
// Шкафчики и бронирования с нечитаемым слотом никогда не считаются прошедшими,
// чтобы студент не потерял из виду активное бронирование.
func (s *Service) IsBookingInPast(b *domain.Booking) bool {
	if b == nil || b.BookingDate.IsZero() || b.TimeSlot == "" || b.IsLocker() {
		return false
	}

	id, ok := domain.ParseSlotID(b.TimeSlot)
	if !ok || id.IsLocker() {
		return false
	}

	now := s.timeProvider.Now()
	y, m, d := b.BookingDate.Date()
	start := time.Date(y, m, d, id.Hour, 0, 0, 0, now.Location())
	return start.Before(now)
}

// Classify делит бронирования на предстоящие (по дате по возрастанию)
// и прошедшие (по дате по убыванию). Ключ сортировки - только дата,
// бронирования одного дня сохраняют исходный порядок.
//
// Результат актуален на момент вызова: классификацию нужно повторять
// после перезагрузки списка.
func (s *Service) Classify(bookings []*domain.Booking) Classified {
	result := Classified{
		Upcoming: make([]*domain.Booking, 0),
		Past:     make([]*domain.Booking, 0),
	}

	for _, b := range bookings {
		if b == nil {
			continue
		}
		if s.IsBookingInPast(b) {
			result.Past = append(result.Past, b)
		} else {
			result.Upcoming = append(result.Upcoming, b)
		}
	}

	sort.SliceStable(result.Upcoming, func(i, j int) bool {
		return result.Upcoming[i].DateString() < result.Upcoming[j].DateString()
	})
	sort.SliceStable(result.Past, func(i, j int) bool {
		return result.Past[i].DateString() > result.Past[j].DateString()
	})

	return result
}
