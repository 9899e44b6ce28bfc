package bookingclient

import (
	"context"
	"time"
)

// DefaultPollInterval период опроса занятости при открытом окне бронирования
const DefaultPollInterval = 5 * time.Second

// BookedSlotsAPI источник занятых слотов
type BookedSlotsAPI interface {
	BookedSlots(ctx context.Context, roomKey, date string) ([]string, error)
}

// Poller периодически запрашивает занятые слоты, чтобы увидеть бронирования
// других пользователей. Это опрос: между запросами возможна гонка за слот,
// окончательное решение принимает сервер при создании бронирования.
type Poller struct {
	api      BookedSlotsAPI
	interval time.Duration

	// OnError вызывается при ошибке запроса, опрос продолжается
	OnError func(error)

	now func() time.Time
}

// NewPoller interval <= 0 заменяется на DefaultPollInterval
func NewPoller(api BookedSlotsAPI, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{api: api, interval: interval, now: time.Now}
}

// Run опрашивает сразу и затем каждые interval, пока не отменён ctx.
// Возвращает ctx.Err().
func (p *Poller) Run(ctx context.Context, roomKey, date string, onUpdate func(booked []string)) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		booked, err := p.api.BookedSlots(ctx, roomKey, date)
		switch {
		case err != nil && ctx.Err() != nil:
			return ctx.Err()
		case err != nil:
			if p.OnError != nil {
				p.OnError(err)
			}
		default:
			onUpdate(booked)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Watch опрашивает занятость для текущего выбора сессии.
// После смены часа слоты запрашиваются заново, чтобы начавшиеся слоты
// стали недоступны. Смена даты или комнаты требует нового вызова Watch.
func (p *Poller) Watch(ctx context.Context, s *Session) error {
	sel := s.Selection()
	if sel.Date == "" {
		return ErrIncompleteSelection
	}

	boundary := nextHour(p.now())
	return p.Run(ctx, sel.RoomKey, sel.Date, func(booked []string) {
		if now := p.now(); !now.Before(boundary) {
			_, err := s.Slots(ctx)
			if err == nil {
				boundary = nextHour(now)
				return
			}
			if p.OnError != nil {
				p.OnError(err)
			}
		}
		s.ApplyBooked(sel.RoomKey, sel.Date, booked)
	})
}

func nextHour(t time.Time) time.Time {
	return t.Truncate(time.Hour).Add(time.Hour)
}
