package userservice

import "errors"

var (
	// ErrStudentNotFound возвращается, когда у пользователя нет профиля студента
	ErrStudentNotFound = errors.New("student profile not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("userservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("userservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что UserService недоступен и бронирование создаётся без профиля студента
	ErrServiceDegraded = errors.New("userservice unavailable: graceful degradation applied")
)
