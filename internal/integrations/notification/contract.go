package notification

import "context"

// Sender транспорт доставки уведомлений (email API, Kafka)
type Sender interface {
	Send(ctx context.Context, event Event) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
