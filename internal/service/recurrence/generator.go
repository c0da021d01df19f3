package recurrence

import (
	"time"

	"github.com/m04kA/SMC-VenueService/internal/domain"
)

// Generator разворачивает правило повторения шаблона события в конечную
// последовательность черновиков. Генерация детерминированная: одинаковый
// шаблон и лимит всегда дают одинаковую последовательность
//
// Первое вхождение - сам шаблон, он повторно не эмитится. Генерация
// останавливается на первом достигнутом пределе: limit, endAfter или endDate
type Generator struct{}

// NewGenerator создает генератор повторений
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate материализует до limit будущих вхождений шаблона
// Черновики копируют описательные поля шаблона, получают статус draft
// и не несут никакого платежного состояния
func (g *Generator) Generate(template *domain.EventTemplate, limit int) ([]domain.EventDraft, error) {
	if template.Recurrence == nil {
		return nil, ErrNoRule
	}
	rule := template.Recurrence

	if !rule.Pattern.IsValid() {
		return nil, ErrInvalidPattern
	}
	if rule.Interval < 1 {
		return nil, ErrInvalidInterval
	}
	if !template.Interval().IsValid() {
		return nil, ErrInvalidAnchor
	}
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	if limit > domain.MaxRecurrenceLimit {
		limit = domain.MaxRecurrenceLimit
	}

	maxCount := limit
	if rule.EndAfter > 0 && rule.EndAfter < maxCount {
		maxCount = rule.EndAfter
	}

	duration := template.Interval().Duration()
	drafts := make([]domain.EventDraft, 0, maxCount)

	current := template.StartTime
	for step := 1; len(drafts) < maxCount; step++ {
		next := advance(template.StartTime, current, step, rule)

		if rule.EndDate != nil && next.After(*rule.EndDate) {
			break
		}

		drafts = append(drafts, domain.EventDraft{
			TemplateID:  template.ID,
			Sequence:    len(drafts) + 1,
			Title:       template.Title,
			Description: template.Description,
			VenueID:     template.VenueID,
			OrganizerID: template.OrganizerID,
			StartTime:   next,
			EndTime:     next.Add(duration),
			Services:    cloneLineItems(template.Services),
			Status:      domain.DraftStatus,
		})

		current = next
	}

	return drafts, nil
}

// advance вычисляет дату следующего вхождения
// Для monthly/yearly шаг считается от якоря (anchor + step*interval),
// чтобы clamping дня месяца не накапливался от вхождения к вхождению:
// Jan 31 -> Feb 28 -> Mar 31, а не Mar 28
func advance(anchor, current time.Time, step int, rule *domain.RecurrenceRule) time.Time {
	switch rule.Pattern {
	case domain.PatternDaily:
		return current.AddDate(0, 0, rule.Interval)

	case domain.PatternWeekly:
		if rule.HasWeekdays() {
			return nextWeekday(current, rule)
		}
		return current.AddDate(0, 0, 7*rule.Interval)

	case domain.PatternMonthly:
		day := anchor.Day()
		if rule.DayOfMonth > 0 {
			day = rule.DayOfMonth
		}
		return addMonthsClamped(anchor, step*rule.Interval, day)

	case domain.PatternYearly:
		day := anchor.Day()
		if rule.DayOfMonth > 0 {
			day = rule.DayOfMonth
		}
		month := anchor.Month()
		if rule.MonthOfYear >= time.January && rule.MonthOfYear <= time.December {
			month = rule.MonthOfYear
		}
		return yearClamped(anchor, step*rule.Interval, month, day)

	default:
		// Паттерн провалидирован до цикла
		return current
	}
}

// nextWeekday ищет следующий подходящий день недели, просматривая максимум
// 7 дней вперед. Если следующий подходящий день лежит уже в новой календарной
// неделе (неделя начинается с понедельника), добавляются (interval-1) недель
func nextWeekday(current time.Time, rule *domain.RecurrenceRule) time.Time {
	allowed := make(map[time.Weekday]struct{}, len(rule.DaysOfWeek))
	for _, d := range rule.DaysOfWeek {
		allowed[d] = struct{}{}
	}

	currentWeek := startOfWeek(current)

	for d := 1; d <= 7; d++ {
		candidate := current.AddDate(0, 0, d)
		if _, ok := allowed[candidate.Weekday()]; !ok {
			continue
		}
		if rule.Interval > 1 && startOfWeek(candidate).After(currentWeek) {
			candidate = candidate.AddDate(0, 0, 7*(rule.Interval-1))
		}
		return candidate
	}

	// Недостижимо: за 7 дней всегда встречается каждый день недели
	return current.AddDate(0, 0, 7*rule.Interval)
}

// startOfWeek возвращает полночь понедельника недели, содержащей t
func startOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // воскресенье - последний день недели
	}
	y, m, d := t.AddDate(0, 0, -(weekday - 1)).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// addMonthsClamped прибавляет months месяцев к якорю, прижимая день месяца
// к последнему существующему дню целевого месяца (Jan 31 + 1m -> Feb 28/29)
func addMonthsClamped(anchor time.Time, months int, day int) time.Time {
	y := anchor.Year()
	m := int(anchor.Month()) - 1 + months
	y += m / 12
	m = m % 12
	if m < 0 {
		m += 12
		y--
	}
	targetMonth := time.Month(m + 1)

	if last := lastDayOfMonth(y, targetMonth); day > last {
		day = last
	}

	return time.Date(y, targetMonth, day,
		anchor.Hour(), anchor.Minute(), anchor.Second(), anchor.Nanosecond(), anchor.Location())
}

// yearClamped прибавляет years лет, опционально переустанавливая месяц,
// с тем же прижатием дня месяца (Feb 29 -> Feb 28 в невисокосный год)
func yearClamped(anchor time.Time, years int, month time.Month, day int) time.Time {
	y := anchor.Year() + years

	if last := lastDayOfMonth(y, month); day > last {
		day = last
	}

	return time.Date(y, month, day,
		anchor.Hour(), anchor.Minute(), anchor.Second(), anchor.Nanosecond(), anchor.Location())
}

// lastDayOfMonth возвращает число последнего дня месяца
func lastDayOfMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func cloneLineItems(items []domain.LineItem) []domain.LineItem {
	if items == nil {
		return nil
	}
	cloned := make([]domain.LineItem, len(items))
	copy(cloned, items)
	return cloned
}
