package models

import (
	"time"

	"github.com/m04kA/SE-RoomBookingService/internal/domain"
)

// Request модели

// GetRoomBookingsRequest запрос администратора на получение бронирований комнаты
type GetRoomBookingsRequest struct {
	UserID  int64   `json:"user_id"`
	IsAdmin bool    `json:"-"`
	RoomKey string  `json:"room_key"`
	Date    *string `json:"date,omitempty"` // YYYY-MM-DD, nil - все даты
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"user_id"`
	RoomKey     string `json:"room_key"`
	RoomName    string `json:"room_name"`
	BookingDate string `json:"booking_date"` // "2026-10-19"
	TimeSlot    string `json:"time_slot"`    // "10-11am" или "Locker 2"
	IsLocker    bool   `json:"is_locker"`

	// Денормализованные данные студента
	StudentName string `json:"student_name"`
	StudentID   string `json:"student_id"`

	CreatedAt time.Time `json:"created_at"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// UserBookingsResponse история бронирований студента, разделённая на предстоящие и прошедшие
type UserBookingsResponse struct {
	Upcoming []BookingResponse `json:"upcoming"` // ближайшие первыми
	Past     []BookingResponse `json:"past"`     // последние первыми
}

// BookedSlotsResponse занятые слоты комнаты на дату
type BookedSlotsResponse struct {
	RoomKey     string   `json:"room_key"`
	Date        string   `json:"date"`
	BookedSlots []string `json:"booked_slots"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:          b.ID,
		UserID:      b.UserID,
		RoomKey:     b.RoomKey,
		RoomName:    b.RoomName,
		BookingDate: b.DateString(),
		TimeSlot:    b.TimeSlot,
		IsLocker:    b.IsLocker(),
		StudentName: b.StudentName,
		StudentID:   b.StudentID,
		CreatedAt:   b.CreatedAt,
	}
}

// FromDomainBookings конвертирует список domain моделей в DTO
func FromDomainBookings(bookings []*domain.Booking) []BookingResponse {
	result := make([]BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			result = append(result, *bookingResp)
		}
	}
	return result
}

// FromDomainBookingList конвертирует список domain моделей в ответ-список
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	return &BookingListResponse{
		Bookings: FromDomainBookings(bookings),
	}
}
