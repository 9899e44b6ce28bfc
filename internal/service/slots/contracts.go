package slots

import "time"

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени.
// Location задаёт часовой пояс кампуса, nil - локальный пояс процесса.
type RealTimeProvider struct {
	Location *time.Location
}

// Now возвращает текущее время в часовом поясе кампуса
func (p *RealTimeProvider) Now() time.Time {
	if p.Location == nil {
		return time.Now()
	}
	return time.Now().In(p.Location)
}

// FixedTimeProvider всегда возвращает одно и то же время (тесты, воспроизведение)
type FixedTimeProvider struct {
	T time.Time
}

func (p *FixedTimeProvider) Now() time.Time {
	return p.T
}
