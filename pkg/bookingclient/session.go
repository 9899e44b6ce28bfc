package bookingclient

import (
	"context"
	"sync"
)

// SessionAPI часть Client, нужная сессии бронирования
type SessionAPI interface {
	Slots(ctx context.Context, roomKey, date string) (*SlotList, error)
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*Booking, error)
}

// Selection выбор пользователя. Слот хранится по идентификатору, а не по позиции
// в списке, поэтому пересчитанный список сопоставляется по id.
type Selection struct {
	RoomKey string
	Date    string
	SlotID  string
}

// Complete выбраны и дата, и слот
func (s Selection) Complete() bool {
	return s.RoomKey != "" && s.Date != "" && s.SlotID != ""
}

// Session состояние одного окна бронирования. Безопасна для конкурентного
// использования: Poller обновляет занятость из своей горутины.
type Session struct {
	api SessionAPI

	mu       sync.Mutex
	sel      Selection
	roomName string
	slots    []Slot
}

// NewSession открывает сессию для комнаты
func NewSession(api SessionAPI, roomKey string) *Session {
	return &Session{
		api: api,
		sel: Selection{RoomKey: roomKey},
	}
}

// Selection текущий выбор (копия)
func (s *Session) Selection() Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel
}

// SelectRoom меняет комнату, дата и слот сбрасываются
func (s *Session) SelectRoom(roomKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sel.RoomKey == roomKey {
		return
	}
	s.sel = Selection{RoomKey: roomKey}
	s.roomName = ""
	s.slots = nil
}

// SelectDate меняет дату, выбранный слот сбрасывается
func (s *Session) SelectDate(date string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sel.Date == date {
		return
	}
	s.sel.Date = date
	s.sel.SlotID = ""
	s.slots = nil
}

// SelectSlot выбирает слот из последнего полученного списка
func (s *Session) SelectSlot(slotID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, slot := range s.slots {
		if slot.ID == slotID && slot.Selectable {
			s.sel.SlotID = slotID
			return nil
		}
	}
	return ErrSlotNotSelectable
}

// Slots запрашивает слоты на выбранную дату заново ("сейчас" читается сервером
// на каждом запросе) и сопоставляет выбранный слот по id.
// Если слот исчез или стал недоступен, выбор слота сбрасывается.
func (s *Session) Slots(ctx context.Context) ([]Slot, error) {
	sel := s.Selection()
	if sel.Date == "" {
		return nil, ErrIncompleteSelection
	}

	list, err := s.api.Slots(ctx, sel.RoomKey, sel.Date)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// пока шёл запрос, пользователь мог сменить комнату или дату
	if s.sel.RoomKey != sel.RoomKey || s.sel.Date != sel.Date {
		return nil, ErrSelectionChanged
	}
	s.roomName = list.RoomName
	s.slots = append([]Slot(nil), list.Slots...)
	for i := range s.slots {
		s.slots[i].expired = !s.slots[i].Booked && !s.slots[i].Selectable
	}
	s.rematchLocked()
	return s.snapshotLocked(), nil
}

// ApplyBooked обновляет занятость по данным опроса. Время здесь не пересчитывается:
// слоты, которые сервер уже счёл прошедшими, остаются недоступными, а смену часа
// обрабатывает Poller.Watch повторным запросом Slots.
func (s *Session) ApplyBooked(roomKey, date string, booked []string) []Slot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sel.RoomKey != roomKey || s.sel.Date != date {
		return s.snapshotLocked()
	}

	set := make(map[string]struct{}, len(booked))
	for _, id := range booked {
		set[id] = struct{}{}
	}
	for i := range s.slots {
		_, isBooked := set[s.slots[i].ID]
		s.slots[i].Booked = isBooked
		s.slots[i].Selectable = !isBooked && !s.slots[i].expired
	}
	s.rematchLocked()
	return s.snapshotLocked()
}

// Confirm отправляет бронирование. Без даты или слота запрос не выполняется.
// Ответ сервера (успех или отказ) возвращается как есть, без повторов.
func (s *Session) Confirm(ctx context.Context) (*Booking, error) {
	s.mu.Lock()
	sel := s.sel
	roomName := s.roomName
	s.mu.Unlock()

	if !sel.Complete() {
		return nil, ErrIncompleteSelection
	}

	booking, err := s.api.CreateBooking(ctx, CreateBookingRequest{
		RoomKey:     sel.RoomKey,
		RoomName:    roomName,
		BookingDate: sel.Date,
		TimeSlot:    sel.SlotID,
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.sel == sel {
		s.sel.SlotID = ""
		for i := range s.slots {
			if s.slots[i].ID == sel.SlotID {
				s.slots[i].Booked = true
				s.slots[i].Selectable = false
			}
		}
	}
	s.mu.Unlock()
	return booking, nil
}

func (s *Session) rematchLocked() {
	if s.sel.SlotID == "" {
		return
	}
	for _, slot := range s.slots {
		if slot.ID == s.sel.SlotID && slot.Selectable {
			return
		}
	}
	s.sel.SlotID = ""
}

func (s *Session) snapshotLocked() []Slot {
	return append([]Slot(nil), s.slots...)
}
