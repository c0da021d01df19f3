package domain

import "time"

// BookingStatus represents the lifecycle status of a venue booking.
type BookingStatus string

const (
	StatusInquiry    BookingStatus = "inquiry"
	StatusTentative  BookingStatus = "tentative"
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
	StatusNoShow     BookingStatus = "no_show"
)

// PaymentStatus represents the payment state of a booking.
type PaymentStatus string

const (
	PaymentStatusUnpaid        PaymentStatus = "unpaid"
	PaymentStatusDepositPaid   PaymentStatus = "deposit_paid"
	PaymentStatusPaid          PaymentStatus = "paid"
	PaymentStatusRefundPending PaymentStatus = "refund_pending"
	PaymentStatusRefunded      PaymentStatus = "refunded"
)

// LineItem is a priced, quantity-bearing addition to a booking.
// The unit price is captured at booking time so later catalog edits do not
// change historical totals.
type LineItem struct {
	ItemID    int64
	Name      string
	UnitPrice float64
	Quantity  int
}

// Total returns the line item cost.
func (li LineItem) Total() float64 {
	return li.UnitPrice * float64(li.Quantity)
}

// CateringBlock is the optional catering selection of a booking. The per-head
// rate is resolved by the caller from the selected menu; this core does not
// know menu internals.
type CateringBlock struct {
	MenuID      int64
	MenuName    string
	PerHeadRate float64
	HeadCount   int
}

// Total returns the catering cost.
func (c CateringBlock) Total() float64 {
	return c.PerHeadRate * float64(c.HeadCount)
}

// DiscountKind distinguishes flat and percentage discounts.
type DiscountKind string

const (
	DiscountFlat    DiscountKind = "flat"
	DiscountPercent DiscountKind = "percent"
)

// Discount reduces the pre-tax total. Percentage discounts apply to the
// subtotal before any discount, never compounded.
type Discount struct {
	Label string
	Kind  DiscountKind
	Value float64
	// Applied is the resolved monetary amount, filled in by the pricing
	// calculator.
	Applied float64
}

// AdditionalCost is a flat extra charge on a booking.
type AdditionalCost struct {
	Label  string
	Amount float64
}

// PricingBreakdown is the fully itemized price of a booking.
// Invariants: GrandTotal = TotalBeforeTax + TaxAmount;
// TotalBeforeTax = VenuePrice + ServicesCost + EquipmentCost + CateringCost +
// sum(AdditionalCosts) - sum(Discounts), floored at 0.
type PricingBreakdown struct {
	VenuePrice      float64
	ServicesCost    float64
	EquipmentCost   float64
	CateringCost    float64
	AdditionalCosts []AdditionalCost
	Discounts       []Discount
	TaxRate         float64
	TaxAmount       float64
	TotalBeforeTax  float64
	GrandTotal      float64
}

// PaymentInfo tracks deposit and balance state of a booking.
type PaymentInfo struct {
	Status          PaymentStatus
	DepositRequired bool
	DepositAmount   float64
	DepositPaid     bool
	AmountPaid      float64
	Balance         float64
}

// RecalculateBalance refreshes Balance from the grand total, clamped at 0.
func (p *PaymentInfo) RecalculateBalance(grandTotal float64) {
	balance := grandTotal - p.AmountPaid
	if balance < 0 {
		balance = 0
	}
	p.Balance = balance
}

// IsUnderDeposited reports whether a required deposit is not covered by the
// amount paid so far.
func (p *PaymentInfo) IsUnderDeposited() bool {
	return p.DepositRequired && p.AmountPaid < p.DepositAmount
}

// TimelineEntry is one append-only audit record of a status transition.
type TimelineEntry struct {
	Status BookingStatus
	At     time.Time
	Actor  string
	Note   *string
}

// Booking represents a venue booking with its derived pricing and payment
// state. Mutations go through the lifecycle state machine only.
type Booking struct {
	ID        int64
	Reference string
	VenueID   int64
	GuestID   int64
	EventName string

	StartTime time.Time
	EndTime   time.Time
	// SetupStart and CleanupEnd are the requested interval expanded by the
	// venue's buffers at booking time.
	SetupStart time.Time
	CleanupEnd time.Time

	AttendeeCount int

	Services  []LineItem
	Equipment []LineItem
	Catering  *CateringBlock

	Pricing PricingBreakdown
	Payment PaymentInfo

	Status   BookingStatus
	Timeline []TimelineEntry

	CancellationFee    *float64
	CancellationRefund *float64
	CancellationReason *string
	CancelledAt        *time.Time

	// NeedsRevalidation is set when the interval, venue or attendee count
	// changed after the last availability check; confirmation must re-check.
	NeedsRevalidation bool

	// Active is the existence lifecycle flag; terminal bookings are archived
	// (soft-deleted), never physically removed.
	Active bool

	// Version guards optimistic concurrency on writes.
	Version int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval returns the requested [StartTime, EndTime) interval.
func (b *Booking) Interval() Interval {
	return Interval{Start: b.StartTime, End: b.EndTime}
}

// OccupationSpan returns the buffered [SetupStart, CleanupEnd) interval.
func (b *Booking) OccupationSpan() Interval {
	return Interval{Start: b.SetupStart, End: b.CleanupEnd}
}

// IsTerminal reports whether the booking reached a terminal disposition.
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled || b.Status == StatusNoShow
}

// BlocksVenue reports whether the booking occupies its venue slot for
// conflict purposes.
func (b *Booking) BlocksVenue() bool {
	return b.Active && !b.IsTerminal()
}

// CanBeCancelled reports whether a cancellation transition is legal.
func (b *Booking) CanBeCancelled() bool {
	return !b.IsTerminal()
}

// CanBeRescheduled reports whether the interval may still change.
func (b *Booking) CanBeRescheduled() bool {
	return !b.IsTerminal() && b.Status != StatusInProgress
}

// VenueBookingsFilter narrows venue booking listings for staff views.
// Zero-value fields are ignored; Status filters exactly, IncludeInactive
// pulls archived records into the result.
type VenueBookingsFilter struct {
	VenueID         int64
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *BookingStatus
	IncludeInactive bool
}

// AppendTimeline records a transition in the append-only timeline.
func (b *Booking) AppendTimeline(status BookingStatus, at time.Time, actor string, note *string) {
	b.Timeline = append(b.Timeline, TimelineEntry{
		Status: status,
		At:     at,
		Actor:  actor,
		Note:   note,
	})
}
