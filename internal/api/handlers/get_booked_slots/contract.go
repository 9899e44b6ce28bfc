package get_booked_slots

import (
	"context"

	"github.com/m04kA/SE-RoomBookingService/internal/service/bookings/models"
)

type BookingService interface {
	GetBookedSlotsResponse(ctx context.Context, roomKey, date string) (*models.BookedSlotsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
