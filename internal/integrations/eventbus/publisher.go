package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SE-RoomBookingService/internal/domain"
	"github.com/m04kA/SE-RoomBookingService/internal/integrations/notification"
)

var (
	// ErrNoBrokers возвращается, если список брокеров пуст
	ErrNoBrokers = errors.New("eventbus: no kafka brokers configured")

	// ErrPublish возвращается при ошибке записи в Kafka
	ErrPublish = errors.New("eventbus: publish failed")
)

// messageWriter часть *kafka.Writer, которую использует Publisher
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher публикует события бронирований в Kafka.
// Ключ сообщения - ID бронирования, чтобы события одной брони шли в одну партицию.
type Publisher struct {
	writer messageWriter
	topic  string
}

// NewPublisher создает publisher поверх kafka.Writer
func NewPublisher(brokers, topic string) (*Publisher, error) {
	list := SplitBrokers(brokers)
	if len(list) == 0 {
		return nil, ErrNoBrokers
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(list...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}
	return &Publisher{writer: writer, topic: topic}, nil
}

// Send публикует событие (реализует notification.Sender)
func (p *Publisher) Send(ctx context.Context, event notification.Event) error {
	value, err := json.Marshal(newBookingEvent(event))
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrPublish, err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.Booking.ID, 10)),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Kind)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}
	return nil
}

// Close закрывает writer
func (p *Publisher) Close() error {
	return p.writer.Close()
}

// BookingEvent сообщение о бронировании в топике
type BookingEvent struct {
	Type        string    `json:"type"`
	BookingID   int64     `json:"booking_id"`
	UserID      int64     `json:"user_id"`
	RoomKey     string    `json:"room_key"`
	RoomName    string    `json:"room_name"`
	BookingDate string    `json:"booking_date"`
	TimeSlot    string    `json:"time_slot"`
	StudentName string    `json:"student_name"`
	StudentID   string    `json:"student_id"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func newBookingEvent(event notification.Event) BookingEvent {
	b := event.Booking
	return BookingEvent{
		Type:        string(event.Kind),
		BookingID:   b.ID,
		UserID:      b.UserID,
		RoomKey:     b.RoomKey,
		RoomName:    b.RoomName,
		BookingDate: b.BookingDate.Format(domain.DateFormat),
		TimeSlot:    b.TimeSlot,
		StudentName: b.StudentName,
		StudentID:   b.StudentID,
		OccurredAt:  event.OccurredAt,
	}
}

// SplitBrokers разбирает список брокеров через запятую
func SplitBrokers(brokers string) []string {
	out := make([]string, 0)
	for _, b := range strings.Split(brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}
