package bookingclient

import (
	"context"
	"errors"
	"sync"
	"time"
)

// RefreshMode когда пересчитывается разделение истории на предстоящие и прошедшие
type RefreshMode string

const (
	// RefreshOnReload только при явной перезагрузке (после загрузки и отмены).
	// Бронирование остаётся "предстоящим" после начала до следующей перезагрузки.
	RefreshOnReload RefreshMode = "reload"

	// RefreshOnTimer дополнительно по таймеру
	RefreshOnTimer RefreshMode = "timer"
)

const defaultHistoryInterval = time.Minute

var errUnknownRefreshMode = errors.New("bookingclient: unknown refresh mode")

// HistoryAPI часть Client для истории бронирований
type HistoryAPI interface {
	MyBookings(ctx context.Context) (*UserBookings, error)
	CancelBooking(ctx context.Context, id int64) error
}

// History история бронирований студента. Классификацию выполняет сервер
// на момент запроса, поэтому каждая перезагрузка её пересчитывает.
type History struct {
	api      HistoryAPI
	mode     RefreshMode
	interval time.Duration

	// OnChange вызывается после каждой успешной перезагрузки
	OnChange func(UserBookings)

	mu       sync.Mutex
	current  UserBookings
	loadedAt time.Time
}

// NewHistory interval используется только в режиме RefreshOnTimer
func NewHistory(api HistoryAPI, mode RefreshMode, interval time.Duration) (*History, error) {
	switch mode {
	case "":
		mode = RefreshOnReload
	case RefreshOnReload, RefreshOnTimer:
	default:
		return nil, errUnknownRefreshMode
	}
	if interval <= 0 {
		interval = defaultHistoryInterval
	}
	return &History{
		api:      api,
		mode:     mode,
		interval: interval,
		current:  UserBookings{Upcoming: []Booking{}, Past: []Booking{}},
	}, nil
}

// Mode режим обновления
func (h *History) Mode() RefreshMode {
	return h.mode
}

// Reload загружает историю заново
func (h *History) Reload(ctx context.Context) (UserBookings, error) {
	bookings, err := h.api.MyBookings(ctx)
	if err != nil {
		return UserBookings{}, err
	}

	h.mu.Lock()
	h.current = *bookings
	h.loadedAt = time.Now()
	snapshot := h.snapshotLocked()
	h.mu.Unlock()

	if h.OnChange != nil {
		h.OnChange(snapshot)
	}
	return snapshot, nil
}

// Current последняя загруженная история и время загрузки
func (h *History) Current() (UserBookings, time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.snapshotLocked(), h.loadedAt
}

// Cancel отменяет бронирование и перезагружает историю
func (h *History) Cancel(ctx context.Context, id int64) (UserBookings, error) {
	if err := h.api.CancelBooking(ctx, id); err != nil {
		return UserBookings{}, err
	}
	return h.Reload(ctx)
}

// Run в режиме RefreshOnTimer перезагружает историю каждые interval до отмены ctx.
// В режиме RefreshOnReload сразу возвращает nil.
func (h *History) Run(ctx context.Context) error {
	if h.mode != RefreshOnTimer {
		return nil
	}

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			// ошибка перезагрузки оставляет прежние данные
			_, _ = h.Reload(ctx)
		}
	}
}

func (h *History) snapshotLocked() UserBookings {
	return UserBookings{
		Upcoming: append([]Booking{}, h.current.Upcoming...),
		Past:     append([]Booking{}, h.current.Past...),
	}
}
