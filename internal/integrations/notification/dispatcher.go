package notification

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SE-RoomBookingService/pkg/metrics"
)

const (
	defaultQueueSize   = 100
	defaultSendTimeout = 10 * time.Second
)

// Dispatcher асинхронно доставляет уведомления через Sender.
// Notify никогда не блокирует бронирование: ошибки доставки только логируются
// и учитываются в метриках.
type Dispatcher struct {
	sender  Sender
	log     Logger
	metrics *metrics.Metrics
	timeout time.Duration

	mu     sync.RWMutex
	closed bool
	queue  chan Event
	wg     sync.WaitGroup
}

// NewDispatcher создает диспетчер и запускает воркер отправки
func NewDispatcher(sender Sender, cfg Config, log Logger, m *metrics.Metrics) *Dispatcher {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaultQueueSize
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = defaultSendTimeout
	}

	d := &Dispatcher{
		sender:  sender,
		log:     log,
		metrics: m,
		timeout: cfg.SendTimeout,
		queue:   make(chan Event, cfg.QueueSize),
	}

	d.wg.Add(1)
	go d.worker()

	return d
}

// Notify ставит событие в очередь. Переполненная очередь отбрасывает событие.
func (d *Dispatcher) Notify(event Event) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return ErrDispatcherClosed
	}

	select {
	case d.queue <- event:
		return nil
	default:
		d.log.Warn("Notification queue full, dropping %s for booking_id=%d", event.Kind, event.Booking.ID)
		d.observe(event.Kind, "dropped")
		return ErrQueueFull
	}
}

// Close прекращает приём событий и дожидается отправки уже поставленных в очередь
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for event := range d.queue {
		d.send(event)
	}
}

func (d *Dispatcher) send(event Event) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	if err := d.sender.Send(ctx, event); err != nil {
		d.log.Error("Failed to send %s notification for booking_id=%d: %v", event.Kind, event.Booking.ID, err)
		d.observe(event.Kind, "failed")
		return
	}

	d.observe(event.Kind, "sent")
}

func (d *Dispatcher) observe(kind Kind, result string) {
	if d.metrics == nil {
		return
	}
	d.metrics.NotificationsTotal.WithLabelValues(string(kind), result).Inc()
}

// NopSender отбрасывает уведомления (transport = none)
type NopSender struct{}

func (NopSender) Send(context.Context, Event) error {
	return nil
}
