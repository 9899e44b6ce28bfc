package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SE-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SE-RoomBookingService/internal/api/middleware"
	getAvailableSlots "github.com/m04kA/SE-RoomBookingService/internal/usecase/get_available_slots"
)

const (
	msgMissingDate     = "дата обязательна"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDateOutOfWindow = "дата вне окна бронирования"
	msgRoomNotFound    = "комната не найдена"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/rooms/{roomKey}/slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	roomKey := mux.Vars(r)["roomKey"]

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /rooms/{key}/slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Пользователь необязателен: endpoint публичный
	userID, _ := middleware.GetUserID(r.Context())

	result, err := h.useCase.Execute(r.Context(), ToUseCaseRequest(userID, roomKey, dateStr))
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrRoomNotFound):
			h.logger.Warn("GET /rooms/{key}/slots - Room not found: room_key=%s", roomKey)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate), errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /rooms/{key}/slots - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailableSlots.ErrDateOutOfWindow):
			h.logger.Warn("GET /rooms/{key}/slots - Date out of window: room_key=%s, date=%s", roomKey, dateStr)
			handlers.RespondBadRequest(w, msgDateOutOfWindow)

		default:
			h.logger.Error("GET /rooms/{key}/slots - Failed to get slots: room_key=%s, date=%s, error=%v",
				roomKey, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /rooms/{key}/slots - Slots retrieved successfully: room_key=%s, date=%s, slots_count=%d",
		roomKey, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
