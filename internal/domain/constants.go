package domain

// Default booking rules
const (
	DefaultFirstHour          = 9  // first start hour for future dates
	DefaultLastStartHour      = 22 // 10-11pm is the last slot of the day
	DefaultWindowDays         = 7  // bookable dates: today .. today+7
	DefaultMaxBookingsPerRoom = 2  // per student and room
	DefaultLockerCount        = 3
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// RoleAdmin value of the role header for administrators
const RoleAdmin = "admin"
