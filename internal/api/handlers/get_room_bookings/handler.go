package get_room_bookings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SE-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SE-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SE-RoomBookingService/internal/service/bookings"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgRoomNotFound  = "комната не найдена"
	msgForbidden     = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/rooms/{roomKey}/bookings
// Query params: date (опционально, YYYY-MM-DD)
// Только для администраторов
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	roomKey := mux.Vars(r)["roomKey"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /admin/rooms/{key}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	serviceReq := ToServiceRequest(roomKey, userID, middleware.IsAdmin(r.Context()), r.URL.Query().Get("date"))

	result, err := h.service.GetRoomBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /admin/rooms/{key}/bookings - Access denied: room_key=%s, user_id=%d", roomKey, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrRoomNotFound):
			h.logger.Warn("GET /admin/rooms/{key}/bookings - Room not found: room_key=%s", roomKey)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /admin/rooms/{key}/bookings - Invalid parameters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /admin/rooms/{key}/bookings - Failed to get bookings: room_key=%s, error=%v",
				roomKey, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/rooms/{key}/bookings - Bookings retrieved successfully: room_key=%s, count=%d",
		roomKey, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
