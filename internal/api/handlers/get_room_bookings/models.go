package get_room_bookings

import (
	"github.com/m04kA/SE-RoomBookingService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из URL и query параметров
func ToServiceRequest(roomKey string, userID int64, isAdmin bool, dateStr string) *models.GetRoomBookingsRequest {
	req := &models.GetRoomBookingsRequest{
		UserID:  userID,
		IsAdmin: isAdmin,
		RoomKey: roomKey,
	}

	// Пустая дата - все даты
	if dateStr != "" {
		req.Date = &dateStr
	}

	return req
}
