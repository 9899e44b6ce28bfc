package slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SE-RoomBookingService/internal/domain"
)

func TestIsSlotSelectable_Today(t *testing.T) {
	tests := []struct {
		name   string
		now    time.Time
		slot   string
		booked BookedSet
		want   bool
	}{
		{name: "already started", now: at(11, 5, 0), slot: "10-11am", want: false},
		{name: "morning before slot", now: at(8, 0, 0), slot: "10-11am", want: true},
		{name: "current hour at exact boundary", now: at(10, 0, 0), slot: "10-11am", want: true},
		{name: "current hour in progress", now: at(10, 0, 30), slot: "10-11am", want: false},
		{name: "booked regardless of time", now: at(6, 0, 0), slot: "9-10am", booked: NewBookedSet("9-10am"), want: false},
		{name: "noon slot", now: at(9, 45, 0), slot: "11-12pm", want: true},
		{name: "after last start hour", now: at(8, 0, 0), slot: "11-12am", want: false},
		{name: "unparseable fails open", now: at(20, 0, 0), slot: "all day", want: true},
		{name: "unparseable but booked", now: at(20, 0, 0), slot: "all day", booked: NewBookedSet("all day"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, tt.now)
			assert.Equal(t, tt.want, svc.IsSlotSelectable(tt.slot, today, tt.booked))
		})
	}
}

func TestIsSlotSelectable_OtherDates(t *testing.T) {
	svc := newTestService(t, at(23, 0, 0))

	assert.True(t, svc.IsSlotSelectable("9-10am", "2026-10-20", nil))
	assert.True(t, svc.IsSlotSelectable("10-11pm", "2026-10-26", NewBookedSet("9-10pm")))
	assert.False(t, svc.IsSlotSelectable("10-11pm", "2026-10-26", NewBookedSet("10-11pm")))
	assert.False(t, svc.IsSlotSelectable("9-10am", "2026-10-18", nil))
	assert.False(t, svc.IsSlotSelectable("9-10am", "bad-date", nil))
}

func TestIsSlotSelectable_Lockers(t *testing.T) {
	svc := newTestService(t, at(23, 59, 0))

	for _, date := range []string{"2026-10-18", today, "2026-10-26"} {
		assert.True(t, svc.IsSlotSelectable("Locker 1", date, NewBookedSet("Locker 2")))
		assert.False(t, svc.IsSlotSelectable("Locker 2", date, NewBookedSet("Locker 2")))
	}
}

func TestGeneratedLabelsMatchBookedSet(t *testing.T) {
	svc := newTestService(t, at(9, 45, 0))

	slots, err := svc.GenerateSlots("meeting", today)
	require.NoError(t, err)
	require.Equal(t, "10-11am", slots[0].Label())

	booked := NewBookedSet(slots[0].Label())
	assert.False(t, svc.IsSlotSelectable(slots[0].Label(), today, booked))
	assert.True(t, svc.IsSlotSelectable("11-12pm", today, booked))

	// every generated label is selectable until it is booked
	for _, s := range slots {
		assert.True(t, svc.IsSlotSelectable(s.Label(), today, nil), s.Label())
		assert.False(t, svc.IsSlotSelectable(s.Label(), today, NewBookedSet(s.Label())), s.Label())
	}
}

func TestFilterSlots(t *testing.T) {
	svc := newTestService(t, at(9, 45, 0))

	generated := []domain.Slot{
		{ID: domain.TimedSlot(9)},
		{ID: domain.TimedSlot(10)},
		{ID: domain.TimedSlot(11)},
	}
	result := svc.FilterSlots(generated, today, NewBookedSet("11-12pm"))
	require.Len(t, result, 3)

	assert.False(t, result[0].Booked)
	assert.False(t, result[0].Selectable)

	assert.False(t, result[1].Booked)
	assert.True(t, result[1].Selectable)

	assert.True(t, result[2].Booked)
	assert.False(t, result[2].Selectable)
}

func TestBookedSet(t *testing.T) {
	var empty BookedSet
	assert.False(t, empty.Contains("9-10am"))
	assert.Empty(t, empty.Slice())

	set := NewBookedSet("Locker 2", "10-11am", "Locker 2")
	assert.Equal(t, []string{"10-11am", "Locker 2"}, set.Slice())
}
