package domain

import (
	"time"

	"github.com/m04kA/SMC-VenueService/pkg/types"
)

// VenueStatus represents the operational status of a venue.
type VenueStatus string

const (
	VenueStatusActive      VenueStatus = "active"
	VenueStatusInactive    VenueStatus = "inactive"
	VenueStatusMaintenance VenueStatus = "maintenance"
)

// CancellationTier is the cancellation-policy category governing fee schedules.
type CancellationTier string

const (
	TierFlexible CancellationTier = "flexible"
	TierModerate CancellationTier = "moderate"
	TierStrict   CancellationTier = "strict"
)

// IsValid reports whether the tier is one of the known categories.
func (t CancellationTier) IsValid() bool {
	return t == TierFlexible || t == TierModerate || t == TierStrict
}

// DayHours is the operating window for one weekday.
type DayHours struct {
	Available bool
	Open      types.TimeString
	Close     types.TimeString
}

// WeekSchedule holds per-weekday operating hours.
type WeekSchedule struct {
	Monday    DayHours
	Tuesday   DayHours
	Wednesday DayHours
	Thursday  DayHours
	Friday    DayHours
	Saturday  DayHours
	Sunday    DayHours
}

// ForDay returns the operating window for the given weekday.
func (w WeekSchedule) ForDay(day time.Weekday) DayHours {
	switch day {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	case time.Sunday:
		return w.Sunday
	default:
		return DayHours{Available: false}
	}
}

// MaintenanceWindow blocks a venue for a half-open interval.
type MaintenanceWindow struct {
	ID     int64
	Span   Interval
	Reason string
}

// Venue represents a bookable physical space with capacity, rates and
// operating constraints.
type Venue struct {
	ID          int64
	HotelID     int64
	Name        string
	Description *string

	CapacityMin int
	CapacityMax int

	BasePrice    float64
	PricePerHour float64

	SetupBufferMinutes   int
	CleanupBufferMinutes int
	MinBookingHours      float64

	Status             VenueStatus
	OperatingHours     WeekSchedule
	MaintenanceWindows []MaintenanceWindow
	CancellationTier   CancellationTier

	// Active is the existence lifecycle (archived venues keep their history),
	// orthogonal to the operational Status.
	Active bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBookable reports whether the venue accepts new bookings at all.
func (v *Venue) IsBookable() bool {
	return v.Active && v.Status == VenueStatusActive
}

// FitsAttendees reports whether the attendee count is within capacity bounds.
func (v *Venue) FitsAttendees(count int) bool {
	return count >= v.CapacityMin && count <= v.CapacityMax
}

// OccupationSpan derives the physical occupation interval of a requested
// interval by applying the venue's setup and cleanup buffers.
func (v *Venue) OccupationSpan(requested Interval) Interval {
	return requested.ExpandBy(v.SetupBufferMinutes, v.CleanupBufferMinutes)
}
