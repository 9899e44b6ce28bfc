package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// SlotKind distinguishes hourly slots from lockers
type SlotKind string

const (
	SlotKindTimed  SlotKind = "timed"
	SlotKindLocker SlotKind = "locker"
)

// SlotID identifies a bookable slot within a room and date.
// String() is the only serialization used for booked-slot sets and
// the time_slot column, so generated and stored identifiers always match.
type SlotID struct {
	Kind   SlotKind
	Hour   int // start hour 0-23, timed slots only
	Locker int // locker number, lockers only
}

// TimedSlot returns the identifier of the hourly slot starting at hour
func TimedSlot(hour int) SlotID {
	return SlotID{Kind: SlotKindTimed, Hour: hour}
}

// LockerSlot returns the identifier of locker n
func LockerSlot(n int) SlotID {
	return SlotID{Kind: SlotKindLocker, Locker: n}
}

// IsLocker returns true for locker identifiers
func (id SlotID) IsLocker() bool {
	return id.Kind == SlotKindLocker
}

// String renders the canonical label.
// Timed: 12-hour clock range with the am/pm suffix taken from the END hour,
// e.g. 8 -> "8-9am", 11 -> "11-12pm", 12 -> "12-1pm", 22 -> "10-11pm", 23 -> "11-12am".
// Locker: "Locker 2".
func (id SlotID) String() string {
	if id.IsLocker() {
		return fmt.Sprintf("Locker %d", id.Locker)
	}
	suffix := "am"
	if (id.Hour+1)%24 >= 12 {
		suffix = "pm"
	}
	return fmt.Sprintf("%d-%d%s", to12h(id.Hour), to12h(id.Hour+1), suffix)
}

func to12h(hour int) int {
	return ((hour + 11) % 12) + 1
}

var (
	lockerPattern = regexp.MustCompile(`(?i)locker\s*(\d+)?`)
	suffixPattern = regexp.MustCompile(`(?i)(am|pm)`)
	digitsPattern = regexp.MustCompile(`\d{1,2}`)
)

// IsLockerLabel reports whether a label names a locker (case-insensitive "locker" substring)
func IsLockerLabel(label string) bool {
	return strings.Contains(strings.ToLower(label), "locker")
}

// ParseSlotID decodes a slot label. ok is false when the label carries
// neither a locker marker nor a readable start hour.
func ParseSlotID(label string) (SlotID, bool) {
	label = strings.TrimSpace(label)
	if label == "" {
		return SlotID{}, false
	}

	if m := lockerPattern.FindStringSubmatch(label); m != nil {
		n := 0
		if m[1] != "" {
			n, _ = strconv.Atoi(m[1])
		}
		return LockerSlot(n), true
	}

	hour, ok := parseStartHour(label)
	if !ok {
		return SlotID{}, false
	}
	return TimedSlot(hour), true
}

// parseStartHour extracts the 24h start hour of a timed label.
// The suffix belongs to the end of the range ("11-12pm" starts at 11:00),
// so when an end hour is present the start is derived from it.
// Labels without a usable end hour fall back to applying the suffix
// to the start number.
func parseStartHour(label string) (int, bool) {
	suffix := ""
	if m := suffixPattern.FindString(label); m != "" {
		suffix = strings.ToLower(m)
	}

	parts := strings.SplitN(label, "-", 2)
	startStr := digitsPattern.FindString(parts[0])
	if startStr == "" {
		return 0, false
	}
	start, _ := strconv.Atoi(startStr)

	if len(parts) == 2 && suffix != "" {
		if endStr := digitsPattern.FindString(parts[1]); endStr != "" {
			end, _ := strconv.Atoi(endStr)
			end24 := end
			switch {
			case suffix == "pm" && end < 12:
				end24 = end + 12
			case suffix == "am" && end == 12:
				end24 = 24
			}
			candidate := end24 - 1
			if candidate >= 0 && candidate <= 23 && to12h(candidate) == start {
				return candidate, true
			}
		}
	}

	hour := start
	if suffix == "pm" && hour < 12 {
		hour += 12
	}
	if suffix == "am" && hour == 12 {
		hour = 0
	}
	if hour > 23 {
		return 0, false
	}
	return hour, true
}

// Slot is one generated, bookable unit for a room on a date
type Slot struct {
	ID SlotID
}

// Label returns the slot identifier as sent to and stored by the backend
func (s Slot) Label() string {
	return s.ID.String()
}

// AvailableSlot is a generated slot annotated against the booked set
type AvailableSlot struct {
	Slot       Slot
	Booked     bool
	Selectable bool
}
