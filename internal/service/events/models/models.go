package models

import (
	"time"

	"github.com/m04kA/SMC-VenueService/internal/domain"
)

// LineItemPayload позиция услуги шаблона события
type LineItemPayload struct {
	ItemID    int64   `json:"itemId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
}

// RecurrencePayload правило повторения шаблона
type RecurrencePayload struct {
	Pattern     string     `json:"pattern"`            // daily | weekly | monthly | yearly
	Interval    int        `json:"interval"`           // Шаг повторения, >= 1
	DaysOfWeek  []string   `json:"daysOfWeek"`         // monday..sunday, только для weekly
	DayOfMonth  int        `json:"dayOfMonth"`         // Для monthly/yearly, 0 = день якоря
	MonthOfYear int        `json:"monthOfYear"`        // Для yearly, 0 = месяц якоря
	EndAfter    int        `json:"endAfter"`           // Число повторений, 0 = без границы
	EndDate     *time.Time `json:"endDate,omitempty"`  // Дата окончания серии
}

// CreateTemplateRequest запрос на создание шаблона события
type CreateTemplateRequest struct {
	OrganizerID int64 // Кто создает шаблон

	Title       string
	Description *string
	VenueID     int64
	StartTime   time.Time
	EndTime     time.Time

	Services   []LineItemPayload
	Recurrence *RecurrencePayload
}

// TemplateResponse ответ с шаблоном события
type TemplateResponse struct {
	ID          int64              `json:"id"`
	Title       string             `json:"title"`
	Description *string            `json:"description,omitempty"`
	VenueID     int64              `json:"venueId"`
	OrganizerID int64              `json:"organizerId"`
	StartTime   time.Time          `json:"startTime"`
	EndTime     time.Time          `json:"endTime"`
	Services    []LineItemPayload  `json:"services,omitempty"`
	Recurrence  *RecurrencePayload `json:"recurrence,omitempty"`
	Active      bool               `json:"active"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// DraftResponse черновик события шаблона
type DraftResponse struct {
	TemplateID  int64     `json:"templateId"`
	Sequence    int       `json:"sequence"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	VenueID     int64     `json:"venueId"`
	OrganizerID int64     `json:"organizerId"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	Status      string    `json:"status"`
}

// DraftListResponse список черновиков шаблона
type DraftListResponse struct {
	TemplateID int64           `json:"templateId"`
	Drafts     []DraftResponse `json:"drafts"`
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday конвертирует имя дня недели в time.Weekday
func ParseWeekday(name string) (time.Weekday, bool) {
	day, ok := weekdayNames[name]
	return day, ok
}

func weekdayName(day time.Weekday) string {
	for name, d := range weekdayNames {
		if d == day {
			return name
		}
	}
	return ""
}

// ToDomainRecurrence конвертирует правило повторения в доменную модель
// Возвращает имя некорректного дня недели второй величиной
func (p *RecurrencePayload) ToDomainRecurrence() (*domain.RecurrenceRule, string) {
	if p == nil {
		return nil, ""
	}

	rule := &domain.RecurrenceRule{
		Pattern:     domain.RecurrencePattern(p.Pattern),
		Interval:    p.Interval,
		DayOfMonth:  p.DayOfMonth,
		MonthOfYear: time.Month(p.MonthOfYear),
		EndAfter:    p.EndAfter,
		EndDate:     p.EndDate,
	}
	for _, name := range p.DaysOfWeek {
		day, ok := ParseWeekday(name)
		if !ok {
			return nil, name
		}
		rule.DaysOfWeek = append(rule.DaysOfWeek, day)
	}
	return rule, ""
}

// ToDomainLineItems конвертирует услуги шаблона в доменную модель
func ToDomainLineItems(items []LineItemPayload) []domain.LineItem {
	if len(items) == 0 {
		return nil
	}
	out := make([]domain.LineItem, len(items))
	for i, li := range items {
		out[i] = domain.LineItem{
			ItemID:    li.ItemID,
			Name:      li.Name,
			UnitPrice: li.UnitPrice,
			Quantity:  li.Quantity,
		}
	}
	return out
}

// FromDomainTemplate конвертирует доменный шаблон в ответ
func FromDomainTemplate(t *domain.EventTemplate) *TemplateResponse {
	return &TemplateResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		VenueID:     t.VenueID,
		OrganizerID: t.OrganizerID,
		StartTime:   t.StartTime,
		EndTime:     t.EndTime,
		Services:    fromDomainLineItems(t.Services),
		Recurrence:  fromDomainRecurrence(t.Recurrence),
		Active:      t.Active,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// FromDomainDrafts конвертирует черновики шаблона в ответ
func FromDomainDrafts(templateID int64, drafts []domain.EventDraft) *DraftListResponse {
	out := make([]DraftResponse, 0, len(drafts))
	for _, d := range drafts {
		out = append(out, DraftResponse{
			TemplateID:  d.TemplateID,
			Sequence:    d.Sequence,
			Title:       d.Title,
			Description: d.Description,
			VenueID:     d.VenueID,
			OrganizerID: d.OrganizerID,
			StartTime:   d.StartTime,
			EndTime:     d.EndTime,
			Status:      d.Status,
		})
	}
	return &DraftListResponse{TemplateID: templateID, Drafts: out}
}

func fromDomainLineItems(items []domain.LineItem) []LineItemPayload {
	if len(items) == 0 {
		return nil
	}
	out := make([]LineItemPayload, len(items))
	for i, li := range items {
		out[i] = LineItemPayload{
			ItemID:    li.ItemID,
			Name:      li.Name,
			UnitPrice: li.UnitPrice,
			Quantity:  li.Quantity,
		}
	}
	return out
}

func fromDomainRecurrence(r *domain.RecurrenceRule) *RecurrencePayload {
	if r == nil {
		return nil
	}
	out := &RecurrencePayload{
		Pattern:     string(r.Pattern),
		Interval:    r.Interval,
		DayOfMonth:  r.DayOfMonth,
		MonthOfYear: int(r.MonthOfYear),
		EndAfter:    r.EndAfter,
		EndDate:     r.EndDate,
	}
	for _, day := range r.DaysOfWeek {
		out.DaysOfWeek = append(out.DaysOfWeek, weekdayName(day))
	}
	return out
}
