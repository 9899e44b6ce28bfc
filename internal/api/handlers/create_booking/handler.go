package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SE-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SE-RoomBookingService/internal/api/middleware"
	createBooking "github.com/m04kA/SE-RoomBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SE-RoomBookingService/pkg/validator"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgSlotNotAvailable   = "выбранный слот уже забронирован"
	msgRoomNotFound       = "комната не найдена"
	msgStudentNotFound    = "профиль студента не найден"
	msgInvalidBookingDate = "некорректная дата бронирования"
	msgDateOutOfWindow    = "дата вне окна бронирования"
	msgInvalidTimeSlot    = "некорректный слот"
	msgTooLateToBook      = "слишком поздно для бронирования этого слота"
	msgLimitReached       = "достигнут лимит бронирований этой комнаты"
	msgInvalidInput       = "выберите дату и слот"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Неполный выбор (нет даты или слота) отклоняется до use case
	if fields := validator.Validate(&req); fields != nil {
		h.logger.Warn("POST /bookings - Validation failed: user_id=%d, fields=%v", userID, fields)
		handlers.RespondValidationError(w, fields)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: user_id=%d, room=%s, date=%s, slot=%s",
				userID, req.RoomKey, req.BookingDate, req.TimeSlot)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrBookingLimitReached):
			h.logger.Warn("POST /bookings - Booking limit reached: user_id=%d, room=%s", userID, req.RoomKey)
			handlers.RespondConflict(w, msgLimitReached)

		case errors.Is(err, createBooking.ErrRoomNotFound):
			h.logger.Warn("POST /bookings - Room not found: room=%s", req.RoomKey)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, createBooking.ErrStudentNotFound):
			h.logger.Warn("POST /bookings - Student not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgStudentNotFound)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: user_id=%d, date=%s", userID, req.BookingDate)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrDateOutOfWindow):
			h.logger.Warn("POST /bookings - Date out of window: user_id=%d, date=%s", userID, req.BookingDate)
			handlers.RespondBadRequest(w, msgDateOutOfWindow)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /bookings - Invalid time slot: user_id=%d, room=%s, slot=%s", userID, req.RoomKey, req.TimeSlot)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			h.logger.Warn("POST /bookings - Too late to book: user_id=%d, room=%s, slot=%s", userID, req.RoomKey, req.TimeSlot)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, room=%s, error=%v",
				userID, req.RoomKey, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, room=%s",
		result.ID, userID, result.RoomKey)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
