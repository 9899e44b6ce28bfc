package rooms

import "errors"

var (
	// ErrRoomNotFound возвращается, когда комнаты нет в каталоге
	ErrRoomNotFound = errors.New("room not found")
)
