package domain

import "time"

// Booking represents a room or locker booking of a student.
// Bookings are only created and deleted, never updated.
type Booking struct {
	ID          int64
	UserID      int64
	RoomKey     string
	RoomName    string
	BookingDate time.Time // date only
	TimeSlot    string    // SlotID.String()

	// Denormalized student identity
	StudentName  string
	StudentID    string
	StudentEmail string

	CreatedAt time.Time
}

// DateString returns the booking date as YYYY-MM-DD
func (b *Booking) DateString() string {
	return b.BookingDate.Format(DateFormat)
}

// IsLocker returns true if the booking is for a locker
func (b *Booking) IsLocker() bool {
	return IsLockerLabel(b.TimeSlot)
}

// RoomBookingsFilter filter for listing bookings of a room
type RoomBookingsFilter struct {
	RoomKey string     // required
	Date    *time.Time // optional, nil - all dates
}
