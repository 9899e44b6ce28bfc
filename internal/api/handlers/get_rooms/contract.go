package get_rooms

import (
	"context"

	"github.com/m04kA/SE-RoomBookingService/internal/service/rooms/models"
)

type RoomService interface {
	List(ctx context.Context) *models.RoomListResponse
	Get(ctx context.Context, key string) (*models.RoomResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
