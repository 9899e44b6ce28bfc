package get_available_slots

import (
	getAvailableSlots "github.com/m04kA/SE-RoomBookingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	RoomKey  string          `json:"room_key"`
	RoomName string          `json:"room_name"`
	Rules    string          `json:"rules"`
	IsLocker bool            `json:"is_locker"`
	Date     string          `json:"date"`
	Slots    []AvailableSlot `json:"slots"`

	// true, если занятость получить не удалось и все слоты показаны свободными
	BookedSlotsUnavailable bool `json:"booked_slots_unavailable,omitempty"`
}

// AvailableSlot модель слота
type AvailableSlot struct {
	ID         string `json:"id"` // "10-11am" или "Locker 2"
	Booked     bool   `json:"booked"`
	Selectable bool   `json:"selectable"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			ID:         slot.Slot.Label(),
			Booked:     slot.Booked,
			Selectable: slot.Selectable,
		}
	}

	return &AvailableSlotsResponse{
		RoomKey:                resp.Room.Key,
		RoomName:               resp.Room.DisplayName,
		Rules:                  resp.Room.Rules,
		IsLocker:               resp.Room.IsLocker(),
		Date:                   resp.Date,
		Slots:                  slots,
		BookedSlotsUnavailable: resp.BookedSlotsUnavailable,
	}
}

// ToUseCaseRequest создает запрос use case из параметров URL
func ToUseCaseRequest(userID int64, roomKey, dateStr string) *getAvailableSlots.Request {
	return &getAvailableSlots.Request{
		UserID:  userID,
		RoomKey: roomKey,
		Date:    dateStr,
	}
}
