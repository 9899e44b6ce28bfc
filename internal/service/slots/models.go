package slots

import (
	"sort"

	"github.com/m04kA/SE-RoomBookingService/internal/domain"
)

// Config правила генерации слотов
type Config struct {
	FirstHour     int // час начала первого слота для будущих дат
	LastStartHour int // час начала последнего слота дня
	WindowDays    int // сколько дней вперёд можно бронировать
}

// DefaultConfig правила по умолчанию: 9:00 - 22:00, неделя вперёд
func DefaultConfig() Config {
	return Config{
		FirstHour:     domain.DefaultFirstHour,
		LastStartHour: domain.DefaultLastStartHour,
		WindowDays:    domain.DefaultWindowDays,
	}
}

// BookedSet множество идентификаторов уже забронированных слотов
type BookedSet map[string]struct{}

// NewBookedSet создаёт множество из списка идентификаторов
func NewBookedSet(ids ...string) BookedSet {
	set := make(BookedSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Contains проверяет наличие идентификатора (nil-множество пустое)
func (s BookedSet) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// Slice возвращает идентификаторы в отсортированном виде
func (s BookedSet) Slice() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Classified бронирования, разделённые на предстоящие и прошедшие
type Classified struct {
	Upcoming []*domain.Booking // по дате, ближайшие первыми
	Past     []*domain.Booking // по дате, последние первыми
}
