package notification

import "errors"

var (
	// ErrQueueFull возвращается, когда очередь уведомлений переполнена и событие отброшено
	ErrQueueFull = errors.New("notification: queue is full")

	// ErrDispatcherClosed возвращается при попытке отправить событие после остановки
	ErrDispatcherClosed = errors.New("notification: dispatcher is closed")
)
