package get_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SE-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SE-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SE-RoomBookingService/internal/service/bookings"
)

const (
	msgInvalidBookingID = "ID бронирования должен быть положительным числом"
	msgNotFound         = "бронирование комнаты не найдено"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgForbidden        = "бронирование принадлежит другому студенту"
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

// Handle GET /api/v1/bookings/{bookingId}
// Студент видит только свои бронирования, администратор любые
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	isAdmin := middleware.IsAdmin(r.Context())

	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil || bookingID <= 0 {
		h.logger.Warn("GET /bookings/{id} - Invalid booking ID %q, user_id=%d", mux.Vars(r)["bookingId"], userID)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	booking, err := h.service.GetByID(r.Context(), bookingID, userID, isAdmin)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{id} - Booking not found: booking_id=%d, user_id=%d", bookingID, userID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /bookings/{id} - Foreign booking requested: booking_id=%d, user_id=%d", bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /bookings/{id} - Failed to get booking_id=%d: %v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	unit := "slot"
	if booking.IsLocker {
		unit = "locker"
	}
	h.logger.Info("GET /bookings/{id} - booking_id=%d room=%s date=%s %s=%q owner=%d viewer=%d admin=%t",
		booking.ID, booking.RoomKey, booking.BookingDate, unit, booking.TimeSlot, booking.UserID, userID, isAdmin)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
