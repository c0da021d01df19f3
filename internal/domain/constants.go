package domain

// Pricing defaults
const (
	// DefaultTaxRate applies when the hotel configuration has no tax rate.
	DefaultTaxRate = 0.10
	// DefaultDepositPercent of the grand total is required up front unless
	// the hotel configuration supplies a different percentage.
	DefaultDepositPercent = 0.30
)

// Business validation constants
const (
	MaxEventNameLength          = 200
	MaxNoteLength               = 500
	MaxCancellationReasonLength = 500
	MaxRecurrenceLimit          = 366
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ConflictStatuses are the statuses that block a venue slot for availability
// checks. Inquiry and tentative bookings count so that two inquiries cannot
// silently claim the same slot.
var ConflictStatuses = []BookingStatus{
	StatusInquiry,
	StatusTentative,
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
}

// TerminalStatuses are the dispositions no transition may leave.
var TerminalStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}

// AllStatuses lists every valid booking status, used for input validation.
var AllStatuses = []BookingStatus{
	StatusInquiry,
	StatusTentative,
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}
