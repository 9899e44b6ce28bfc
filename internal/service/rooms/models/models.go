package models

import (
	"time"

	"github.com/m04kA/SE-RoomBookingService/internal/domain"
)

// RoomResponse описание комнаты для клиента
type RoomResponse struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Rules       string `json:"rules"`
	SlotShape   string `json:"slot_shape"` // timed | locker
	IsLocker    bool   `json:"is_locker"`
	LockerCount int    `json:"locker_count,omitempty"`
}

// BookingWindow диапазон дат, доступных для бронирования (включительно)
type BookingWindow struct {
	FirstDate string `json:"first_date"`
	LastDate  string `json:"last_date"`
}

// ClientSettings рекомендуемые клиентам период опроса занятости
// и режим обновления истории бронирований
type ClientSettings struct {
	PollIntervalSeconds    int    `json:"poll_interval_seconds"`
	HistoryRefresh         string `json:"history_refresh"` // reload | timer
	HistoryIntervalSeconds int    `json:"history_interval_seconds"`
}

// RoomListResponse каталог комнат с текущим окном бронирования
type RoomListResponse struct {
	Rooms          []RoomResponse `json:"rooms"`
	BookingWindow  BookingWindow  `json:"booking_window"`
	ClientSettings ClientSettings `json:"client_settings"`
}

// FromDomainRoom конвертирует domain модель в DTO
func FromDomainRoom(r domain.Room) RoomResponse {
	resp := RoomResponse{
		Key:       r.Key,
		Name:      r.DisplayName,
		Rules:     r.Rules,
		SlotShape: string(r.SlotShape),
		IsLocker:  r.IsLocker(),
	}
	if r.IsLocker() {
		resp.LockerCount = r.LockerCount
	}
	return resp
}

// NewBookingWindow форматирует границы окна бронирования
func NewBookingWindow(first, last time.Time) BookingWindow {
	return BookingWindow{
		FirstDate: first.Format(domain.DateFormat),
		LastDate:  last.Format(domain.DateFormat),
	}
}
