package bookedslots

import "errors"

var (
	// ErrCacheUnavailable возвращается при ошибках обращения к Redis
	ErrCacheUnavailable = errors.New("bookedslots.cache: redis unavailable")

	// ErrCorruptedEntry возвращается, если значение в кеше не удалось разобрать
	ErrCorruptedEntry = errors.New("bookedslots.cache: corrupted entry")
)
