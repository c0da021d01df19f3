package models

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	"github.com/m04kA/SMC-VenueService/pkg/types"
)

// DayHoursPayload расписание площадки на один день недели
type DayHoursPayload struct {
	Available bool   `json:"available"`
	Open      string `json:"open,omitempty"`  // HH:MM
	Close     string `json:"close,omitempty"` // HH:MM, 24:00 = до конца суток
}

// WeekSchedulePayload расписание площадки на неделю
type WeekSchedulePayload struct {
	Monday    DayHoursPayload `json:"monday"`
	Tuesday   DayHoursPayload `json:"tuesday"`
	Wednesday DayHoursPayload `json:"wednesday"`
	Thursday  DayHoursPayload `json:"thursday"`
	Friday    DayHoursPayload `json:"friday"`
	Saturday  DayHoursPayload `json:"saturday"`
	Sunday    DayHoursPayload `json:"sunday"`
}

// CreateVenueRequest запрос на создание площадки
type CreateVenueRequest struct {
	UserID int64 // Кто создает (персонал отеля)

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

	OperatingHours   WeekSchedulePayload
	CancellationTier string // flexible | moderate | strict
}

// UpdateVenueRequest запрос на частичное обновление площадки
// nil-поля не изменяются
type UpdateVenueRequest struct {
	UserID  int64
	VenueID int64

	Name        *string
	Description *string

	CapacityMin *int
	CapacityMax *int

	BasePrice    *float64
	PricePerHour *float64

	SetupBufferMinutes   *int
	CleanupBufferMinutes *int
	MinBookingHours      *float64

	Status           *string // active | inactive | maintenance
	OperatingHours   *WeekSchedulePayload
	CancellationTier *string
}

// AddMaintenanceWindowRequest запрос на добавление окна обслуживания
type AddMaintenanceWindowRequest struct {
	UserID  int64
	VenueID int64

	Start  time.Time
	End    time.Time
	Reason string
}

// MaintenanceWindowResponse окно обслуживания площадки
type MaintenanceWindowResponse struct {
	ID     int64     `json:"id"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Reason string    `json:"reason"`
}

// VenueResponse ответ с данными площадки
type VenueResponse struct {
	ID          int64   `json:"id"`
	HotelID     int64   `json:"hotelId"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`

	CapacityMin int `json:"capacityMin"`
	CapacityMax int `json:"capacityMax"`

	BasePrice    float64 `json:"basePrice"`
	PricePerHour float64 `json:"pricePerHour"`

	SetupBufferMinutes   int     `json:"setupBufferMinutes"`
	CleanupBufferMinutes int     `json:"cleanupBufferMinutes"`
	MinBookingHours      float64 `json:"minBookingHours"`

	Status             string                      `json:"status"`
	OperatingHours     WeekSchedulePayload         `json:"operatingHours"`
	MaintenanceWindows []MaintenanceWindowResponse `json:"maintenanceWindows,omitempty"`
	CancellationTier   string                      `json:"cancellationTier"`

	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// VenueListResponse список площадок отеля
type VenueListResponse struct {
	Venues []VenueResponse `json:"venues"`
}

// ToDomainSchedule конвертирует недельное расписание в доменную модель
func (p *WeekSchedulePayload) ToDomainSchedule() (domain.WeekSchedule, error) {
	var out domain.WeekSchedule
	days := []struct {
		payload DayHoursPayload
		target  *domain.DayHours
		name    string
	}{
		{p.Monday, &out.Monday, "monday"},
		{p.Tuesday, &out.Tuesday, "tuesday"},
		{p.Wednesday, &out.Wednesday, "wednesday"},
		{p.Thursday, &out.Thursday, "thursday"},
		{p.Friday, &out.Friday, "friday"},
		{p.Saturday, &out.Saturday, "saturday"},
		{p.Sunday, &out.Sunday, "sunday"},
	}

	for _, d := range days {
		hours, err := toDomainDayHours(d.payload)
		if err != nil {
			return domain.WeekSchedule{}, fmt.Errorf("%s: %w", d.name, err)
		}
		*d.target = hours
	}
	return out, nil
}

func toDomainDayHours(p DayHoursPayload) (domain.DayHours, error) {
	if !p.Available {
		return domain.DayHours{Available: false}, nil
	}

	open, err := types.NewTimeStringFromString(p.Open)
	if err != nil {
		return domain.DayHours{}, err
	}
	close, err := types.NewTimeStringFromString(p.Close)
	if err != nil {
		return domain.DayHours{}, err
	}
	return domain.DayHours{Available: true, Open: open, Close: close}, nil
}

// FromDomainVenue конвертирует доменную площадку в ответ
func FromDomainVenue(v *domain.Venue) *VenueResponse {
	windows := make([]MaintenanceWindowResponse, 0, len(v.MaintenanceWindows))
	for _, w := range v.MaintenanceWindows {
		windows = append(windows, MaintenanceWindowResponse{
			ID:     w.ID,
			Start:  w.Span.Start,
			End:    w.Span.End,
			Reason: w.Reason,
		})
	}

	return &VenueResponse{
		ID:                   v.ID,
		HotelID:              v.HotelID,
		Name:                 v.Name,
		Description:          v.Description,
		CapacityMin:          v.CapacityMin,
		CapacityMax:          v.CapacityMax,
		BasePrice:            v.BasePrice,
		PricePerHour:         v.PricePerHour,
		SetupBufferMinutes:   v.SetupBufferMinutes,
		CleanupBufferMinutes: v.CleanupBufferMinutes,
		MinBookingHours:      v.MinBookingHours,
		Status:               string(v.Status),
		OperatingHours:       fromDomainSchedule(v.OperatingHours),
		MaintenanceWindows:   windows,
		CancellationTier:     string(v.CancellationTier),
		Active:               v.Active,
		CreatedAt:            v.CreatedAt,
		UpdatedAt:            v.UpdatedAt,
	}
}

// FromDomainVenueList конвертирует список площадок в ответ
func FromDomainVenueList(venues []*domain.Venue) *VenueListResponse {
	out := make([]VenueResponse, 0, len(venues))
	for _, v := range venues {
		out = append(out, *FromDomainVenue(v))
	}
	return &VenueListResponse{Venues: out}
}

func fromDomainSchedule(s domain.WeekSchedule) WeekSchedulePayload {
	return WeekSchedulePayload{
		Monday:    fromDomainDayHours(s.Monday),
		Tuesday:   fromDomainDayHours(s.Tuesday),
		Wednesday: fromDomainDayHours(s.Wednesday),
		Thursday:  fromDomainDayHours(s.Thursday),
		Friday:    fromDomainDayHours(s.Friday),
		Saturday:  fromDomainDayHours(s.Saturday),
		Sunday:    fromDomainDayHours(s.Sunday),
	}
}

func fromDomainDayHours(d domain.DayHours) DayHoursPayload {
	if !d.Available {
		return DayHoursPayload{Available: false}
	}
	return DayHoursPayload{
		Available: true,
		Open:      d.Open.String(),
		Close:     d.Close.String(),
	}
}
