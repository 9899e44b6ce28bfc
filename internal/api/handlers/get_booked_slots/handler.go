package get_booked_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SE-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SE-RoomBookingService/internal/service/bookings"
)

const (
	msgMissingDate  = "дата обязательна"
	msgInvalidDate  = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgRoomNotFound = "комната не найдена"
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

// Handle GET /api/v1/rooms/{roomKey}/booked-slots
// Query params: date (required, YYYY-MM-DD)
// Используется клиентами для периодического опроса занятости
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	roomKey := mux.Vars(r)["roomKey"]

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /rooms/{key}/booked-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	result, err := h.service.GetBookedSlotsResponse(r.Context(), roomKey, dateStr)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrRoomNotFound):
			h.logger.Warn("GET /rooms/{key}/booked-slots - Room not found: room_key=%s", roomKey)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /rooms/{key}/booked-slots - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /rooms/{key}/booked-slots - Failed to get booked slots: room_key=%s, date=%s, error=%v",
				roomKey, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
