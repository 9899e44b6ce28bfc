package bookingclient

import "time"

// Room комната из каталога
type Room struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Rules       string `json:"rules"`
	SlotShape   string `json:"slot_shape"`
	IsLocker    bool   `json:"is_locker"`
	LockerCount int    `json:"locker_count,omitempty"`
}

// BookingWindow допустимые даты бронирования (включительно)
type BookingWindow struct {
	FirstDate string `json:"first_date"`
	LastDate  string `json:"last_date"`
}

// ClientSettings параметры, которые сервер рекомендует клиентам
type ClientSettings struct {
	PollIntervalSeconds    int    `json:"poll_interval_seconds"`
	HistoryRefresh         string `json:"history_refresh"`
	HistoryIntervalSeconds int    `json:"history_interval_seconds"`
}

// RoomList ответ GET /rooms
type RoomList struct {
	Rooms          []Room         `json:"rooms"`
	BookingWindow  BookingWindow  `json:"booking_window"`
	ClientSettings ClientSettings `json:"client_settings"`
}

// Slot слот комнаты на дату
type Slot struct {
	ID         string `json:"id"`
	Booked     bool   `json:"booked"`
	Selectable bool   `json:"selectable"`

	// сервер счёл слот недоступным по времени, а не из-за занятости
	expired bool
}

// SlotList ответ GET /rooms/{roomKey}/slots
type SlotList struct {
	RoomKey                string `json:"room_key"`
	RoomName               string `json:"room_name"`
	Rules                  string `json:"rules"`
	IsLocker               bool   `json:"is_locker"`
	Date                   string `json:"date"`
	Slots                  []Slot `json:"slots"`
	BookedSlotsUnavailable bool   `json:"booked_slots_unavailable,omitempty"`
}

type bookedSlotsResponse struct {
	RoomKey     string   `json:"room_key"`
	Date        string   `json:"date"`
	BookedSlots []string `json:"booked_slots"`
}

// CreateBookingRequest тело POST /bookings
type CreateBookingRequest struct {
	RoomKey     string `json:"room_key"`
	RoomName    string `json:"room_name,omitempty"`
	BookingDate string `json:"booking_date"`
	TimeSlot    string `json:"time_slot"`
}

// Booking бронирование
type Booking struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	RoomKey     string    `json:"room_key"`
	RoomName    string    `json:"room_name"`
	BookingDate string    `json:"booking_date"`
	TimeSlot    string    `json:"time_slot"`
	IsLocker    bool      `json:"is_locker"`
	StudentName string    `json:"student_name"`
	StudentID   string    `json:"student_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserBookings история бронирований: ближайшие предстоящие первыми, последние прошедшие первыми
type UserBookings struct {
	Upcoming []Booking `json:"upcoming"`
	Past     []Booking `json:"past"`
}

type errorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}
