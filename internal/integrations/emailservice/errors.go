package emailservice

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("emailservice client: internal error")

	// ErrInvalidResponse возвращается при неуспешном ответе email API
	ErrInvalidResponse = errors.New("emailservice client: invalid response")
)
