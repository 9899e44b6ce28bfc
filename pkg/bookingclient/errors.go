package bookingclient

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrIncompleteSelection не выбраны дата или слот, запрос не отправлялся
	ErrIncompleteSelection = errors.New("bookingclient: select a date and a slot")

	// ErrSlotNotSelectable слота нет в текущем списке или он недоступен
	ErrSlotNotSelectable = errors.New("bookingclient: slot is not selectable")

	// ErrSelectionChanged комната или дата сменились, пока выполнялся запрос
	ErrSelectionChanged = errors.New("bookingclient: selection changed during request")

	ErrBadRequest   = errors.New("bookingclient: bad request")
	ErrUnauthorized = errors.New("bookingclient: unauthorized")
	ErrForbidden    = errors.New("bookingclient: forbidden")
	ErrNotFound     = errors.New("bookingclient: not found")
	ErrConflict     = errors.New("bookingclient: conflict")
	ErrRateLimited  = errors.New("bookingclient: too many requests")
	ErrServer       = errors.New("bookingclient: server error")

	// ErrTransport запрос не дошёл до сервера или ответ не разобран
	ErrTransport = errors.New("bookingclient: transport error")
)

// APIError отказ сервера. Сообщение возвращается как есть.
type APIError struct {
	StatusCode int
	Message    string
	Details    map[string]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("bookingclient: %d %s", e.StatusCode, e.Message)
}

// Is сопоставляет статус ответа с сентинелами пакета
func (e *APIError) Is(target error) bool {
	return statusError(e.StatusCode) == target
}

func statusError(status int) error {
	switch {
	case status == http.StatusBadRequest:
		return ErrBadRequest
	case status == http.StatusUnauthorized:
		return ErrUnauthorized
	case status == http.StatusForbidden:
		return ErrForbidden
	case status == http.StatusNotFound:
		return ErrNotFound
	case status == http.StatusConflict:
		return ErrConflict
	case status == http.StatusTooManyRequests:
		return ErrRateLimited
	case status >= http.StatusInternalServerError:
		return ErrServer
	default:
		return nil
	}
}
