package create_booking

import (
	"time"

	"github.com/m04kA/SE-RoomBookingService/internal/domain"
	createBooking "github.com/m04kA/SE-RoomBookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	RoomKey     string `json:"room_key" validate:"required,max=64"`
	BookingDate string `json:"booking_date" validate:"required,isodate"` // "2026-10-20"
	TimeSlot    string `json:"time_slot" validate:"required,max=32"`     // "10-11am" или "Locker 2"

	// Название комнаты присылает веб-клиент, сервер берёт его из каталога
	RoomName string `json:"room_name,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"user_id"`
	RoomKey     string `json:"room_key"`
	RoomName    string `json:"room_name"`
	BookingDate string `json:"booking_date"`
	TimeSlot    string `json:"time_slot"`
	StudentName string `json:"student_name"`
	StudentID   string `json:"student_id"`
	CreatedAt   string `json:"created_at"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) *createBooking.Request {
	return &createBooking.Request{
		UserID:   userID,
		RoomKey:  r.RoomKey,
		Date:     r.BookingDate,
		TimeSlot: r.TimeSlot,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:          resp.ID,
		UserID:      resp.UserID,
		RoomKey:     resp.RoomKey,
		RoomName:    resp.RoomName,
		BookingDate: resp.BookingDate.Format(domain.DateFormat),
		TimeSlot:    resp.TimeSlot,
		StudentName: resp.StudentName,
		StudentID:   resp.StudentID,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
	}
}
