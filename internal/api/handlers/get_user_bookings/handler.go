package get_user_bookings

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SE-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SE-RoomBookingService/internal/api/middleware"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
	msgMissingUserID = "отсутствует ID пользователя"
	msgForbidden     = "доступ запрещен"
)

// selfAlias позволяет клиенту не знать свой ID: /users/me/bookings
const selfAlias = "me"

func isSelf(userIDStr string) bool {
	return userIDStr == "" || userIDStr == selfAlias
}

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

// Handle GET /api/v1/bookings и GET /api/v1/users/{userId}/bookings
// Ответ разделён на upcoming и past относительно момента запроса
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /users/{userId}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	userID := callerID
	if userIDStr := mux.Vars(r)["userId"]; !isSelf(userIDStr) {
		parsed, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /users/{userId}/bookings - Invalid user ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidUserID)
			return
		}
		userID = parsed
	}

	// Чужую историю видит только администратор
	if userID != callerID && !middleware.IsAdmin(r.Context()) {
		h.logger.Warn("GET /users/{userId}/bookings - Access denied: caller=%d, user_id=%d", callerID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	result, err := h.service.GetUserBookings(r.Context(), userID)
	if err != nil {
		h.logger.Error("GET /users/{userId}/bookings - Failed to get bookings: user_id=%d, error=%v",
			userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /users/{userId}/bookings - Bookings retrieved successfully: user_id=%d, upcoming=%d, past=%d",
		userID, len(result.Upcoming), len(result.Past))
	handlers.RespondJSON(w, http.StatusOK, result)
}
