package create_booking

import (
	"fmt"
	"strings"
)

// validateRequest валидирует входные данные запроса.
// Выполняется до любых обращений к БД и внешним сервисам.
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.RoomKey) == "" {
		return fmt.Errorf("%w: room key is required", ErrInvalidInput)
	}

	// Подтверждение без даты или слота невозможно
	if strings.TrimSpace(req.Date) == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.TimeSlot) == "" {
		return fmt.Errorf("%w: time slot is required", ErrInvalidInput)
	}

	return nil
}
