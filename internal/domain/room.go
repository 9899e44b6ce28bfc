package domain

import (
	"errors"
	"fmt"
)

// SlotShape describes how a room is divided into bookable units
type SlotShape string

const (
	SlotShapeTimed  SlotShape = "timed"
	SlotShapeLocker SlotShape = "locker"
)

// Room is a static room definition
type Room struct {
	Key         string
	DisplayName string
	Rules       string
	SlotShape   SlotShape
	LockerCount int // lockers only
}

// IsLocker returns true if the room is booked per locker, without time
func (r Room) IsLocker() bool {
	return r.SlotShape == SlotShapeLocker
}

// AcceptsLabel reports whether label is a canonical slot identifier of this
// room's shape. Timed rooms accept any hour, lockers accept 1..LockerCount.
func (r Room) AcceptsLabel(label string) bool {
	id, ok := ParseSlotID(label)
	if !ok || id.String() != label {
		return false
	}
	if r.IsLocker() {
		return id.IsLocker() && id.Locker >= 1 && id.Locker <= r.LockerCount
	}
	return !id.IsLocker()
}

var (
	ErrEmptyCatalog     = errors.New("room catalog is empty")
	ErrDuplicateRoomKey = errors.New("duplicate room key")
	ErrInvalidRoom      = errors.New("invalid room definition")
)

// RoomCatalog is an immutable, ordered set of room definitions
type RoomCatalog struct {
	rooms []Room
	byKey map[string]Room
}

// NewRoomCatalog validates and indexes room definitions
func NewRoomCatalog(rooms []Room) (*RoomCatalog, error) {
	if len(rooms) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &RoomCatalog{
		rooms: make([]Room, 0, len(rooms)),
		byKey: make(map[string]Room, len(rooms)),
	}
	for _, r := range rooms {
		if r.Key == "" {
			return nil, fmt.Errorf("%w: empty key", ErrInvalidRoom)
		}
		if _, exists := c.byKey[r.Key]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRoomKey, r.Key)
		}
		switch r.SlotShape {
		case SlotShapeTimed:
		case SlotShapeLocker:
			if r.LockerCount <= 0 {
				return nil, fmt.Errorf("%w: room %s must have at least one locker", ErrInvalidRoom, r.Key)
			}
		default:
			return nil, fmt.Errorf("%w: room %s has unknown slot shape %q", ErrInvalidRoom, r.Key, r.SlotShape)
		}
		c.rooms = append(c.rooms, r)
		c.byKey[r.Key] = r
	}
	return c, nil
}

// DefaultRooms returns the department's standard rooms
func DefaultRooms() []Room {
	return []Room{
		{
			Key:         "meeting",
			DisplayName: "Meeting Room",
			Rules:       "You can book up to 2 hours per session.",
			SlotShape:   SlotShapeTimed,
		},
		{
			Key:         "locker",
			DisplayName: "Locker",
			Rules:       "No time limitation. Lockers available.",
			SlotShape:   SlotShapeLocker,
			LockerCount: DefaultLockerCount,
		},
		{
			Key:         "kitchen",
			DisplayName: "Kitchen",
			Rules:       "Can book for 1 hour per session.",
			SlotShape:   SlotShapeTimed,
		},
	}
}

// Get returns the room by key
func (c *RoomCatalog) Get(key string) (Room, bool) {
	r, ok := c.byKey[key]
	return r, ok
}

// All returns rooms in catalog order
func (c *RoomCatalog) All() []Room {
	out := make([]Room, len(c.rooms))
	copy(out, c.rooms)
	return out
}
