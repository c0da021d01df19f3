package lifecycle

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	"github.com/m04kA/SMC-VenueService/internal/service/pricing"
)

// Порядковые номера статусов основной цепочки
// inquiry -> tentative -> pending -> confirmed -> in_progress -> completed
// Движение по цепочке только вперед; cancelled и no_show - боковые выходы
// из любого нетерминального статуса
var chainOrder = map[domain.BookingStatus]int{
	domain.StatusInquiry:    0,
	domain.StatusTentative:  1,
	domain.StatusPending:    2,
	domain.StatusConfirmed:  3,
	domain.StatusInProgress: 4,
	domain.StatusCompleted:  5,
}

// TransitionContext сопровождающие данные перехода
type TransitionContext struct {
	// Actor кто инициировал переход (идентификатор пользователя или системы)
	Actor string
	// Note опциональная заметка для таймлайна; при отмене используется
	// как причина отмены
	Note *string
	// Now момент перехода
	Now time.Time
	// Venue площадка бронирования; обязательна для подтверждения
	// и для отмены
	Venue *domain.Venue
	// RefundOverride явная сумма возврата при отмене (goodwill exception)
	// Штраф при этом все равно фиксируется для аудита
	RefundOverride *float64
}

// Machine машина состояний бронирования. Владеет легальностью переходов
// и их побочными эффектами: депозитный гейт на подтверждении, повторная
// проверка доступности, расчет штрафа при отмене, запись в таймлайн
//
// Machine не пишет в хранилище: она мутирует переданное бронирование,
// персистентность - ответственность вызывающего usecase
type Machine struct {
	availability AvailabilityChecker
	policy       CancellationPolicy
	calculator   *pricing.Calculator
	logger       Logger
	metrics      TransitionCounter
}

// NewMachine создает машину состояний
// metrics может быть nil, тогда счетчики переходов не ведутся
func NewMachine(availability AvailabilityChecker, policy CancellationPolicy, calculator *pricing.Calculator, logger Logger, metrics TransitionCounter) *Machine {
	return &Machine{
		availability: availability,
		policy:       policy,
		calculator:   calculator,
		logger:       logger,
		metrics:      metrics,
	}
}

// Transition переводит бронирование в целевой статус
// При успехе мутирует booking (статус, таймлайн, поля отмены) и возвращает его же
// При ошибке бронирование остается нетронутым
func (m *Machine) Transition(ctx context.Context, booking *domain.Booking, target domain.BookingStatus, tctx TransitionContext) (*domain.Booking, error) {
	if !booking.Active {
		return nil, fmt.Errorf("%w: booking %s", ErrBookingArchived, booking.Reference)
	}
	if booking.IsTerminal() {
		return nil, fmt.Errorf("%w: booking %s is already %s", ErrIllegalTransition, booking.Reference, booking.Status)
	}
	if target == booking.Status {
		// Повторный перевод в тот же статус - ошибка вызывающей стороны
		return nil, fmt.Errorf("%w: booking %s is already %s", ErrIllegalTransition, booking.Reference, booking.Status)
	}

	switch target {
	case domain.StatusCancelled:
		if err := m.applyCancellation(booking, tctx); err != nil {
			return nil, err
		}

	case domain.StatusNoShow:
		// Боковой выход без дополнительных гвардов

	case domain.StatusConfirmed:
		if err := m.guardConfirmation(ctx, booking, tctx); err != nil {
			return nil, err
		}
		if err := m.guardForward(booking.Status, target); err != nil {
			return nil, err
		}

	case domain.StatusTentative, domain.StatusPending, domain.StatusInProgress, domain.StatusCompleted:
		if err := m.guardForward(booking.Status, target); err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, target)
	}

	from := booking.Status
	booking.Status = target
	booking.AppendTimeline(target, tctx.Now, tctx.Actor, tctx.Note)

	if m.metrics != nil {
		m.metrics.IncBookingTransition(string(from), string(target))
	}
	m.logger.Info("Transition: booking %s moved %s -> %s by %s", booking.Reference, from, target, tctx.Actor)

	return booking, nil
}

// Reprice пересчитывает стоимость бронирования после изменения позиций
// или интервала. Подтверждение не отзывается: если после пересчета депозит
// перестал покрываться, возвращается underDeposited=true, решение - за
// вызывающей стороной
func (m *Machine) Reprice(booking *domain.Booking, venue *domain.Venue, taxRate float64) (underDeposited bool, err error) {
	if booking.Status == domain.StatusCompleted || booking.Status == domain.StatusCancelled {
		return false, fmt.Errorf("%w: booking %s is %s and can not be repriced", ErrIllegalTransition, booking.Reference, booking.Status)
	}
	if venue == nil {
		return false, ErrVenueRequired
	}

	breakdown, err := m.calculator.Compute(pricing.Input{
		Venue:           venue,
		Interval:        booking.Interval(),
		Services:        booking.Services,
		Equipment:       booking.Equipment,
		Catering:        booking.Catering,
		AdditionalCosts: booking.Pricing.AdditionalCosts,
		Discounts:       booking.Pricing.Discounts,
		TaxRate:         taxRate,
	})
	if err != nil {
		return false, fmt.Errorf("%w: Reprice - failed to compute pricing: %v", ErrInternal, err)
	}

	booking.Pricing = breakdown
	if booking.Payment.DepositRequired {
		booking.Payment.DepositAmount = m.calculator.DepositFor(breakdown.GrandTotal, 0)
	}
	booking.Payment.RecalculateBalance(breakdown.GrandTotal)

	return booking.Payment.IsUnderDeposited(), nil
}

// guardForward разрешает движение по основной цепочке только на соседний
// следующий статус. Перепрыгивание статусов запрещено: скачок
// pending -> in_progress обошел бы депозитный гейт подтверждения
func (m *Machine) guardForward(from, to domain.BookingStatus) error {
	fromIdx, ok := chainOrder[from]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, from)
	}
	toIdx, ok := chainOrder[to]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, to)
	}
	if toIdx != fromIdx+1 {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from, to)
	}
	return nil
}

// guardConfirmation депозитный гейт и ревалидация доступности
func (m *Machine) guardConfirmation(ctx context.Context, booking *domain.Booking, tctx TransitionContext) error {
	p := booking.Payment
	if p.DepositRequired && !p.DepositPaid && p.AmountPaid < p.DepositAmount {
		m.logger.Warn("Transition: booking %s confirmation blocked, deposit %.2f not covered by %.2f paid",
			booking.Reference, p.DepositAmount, p.AmountPaid)
		return fmt.Errorf("%w: %.2f required, %.2f paid", ErrDepositRequired, p.DepositAmount, p.AmountPaid)
	}

	// Доступность обязана пройти заново на момент подтверждения, даже если
	// при создании проверка прошла: с тех пор могли добавиться окна
	// обслуживания, сузиться рабочие часы или смениться статус площадки.
	// Собственное бронирование исключается из поиска конфликтов
	if tctx.Venue == nil {
		return fmt.Errorf("%w: availability re-check on confirm", ErrVenueRequired)
	}
	if err := m.availability.Check(ctx, tctx.Venue, booking.Interval(), &booking.ID); err != nil {
		m.logger.Warn("Transition: booking %s availability re-check failed: %v", booking.Reference, err)
		return fmt.Errorf("%w: %v", ErrRevalidationFailed, err)
	}
	booking.NeedsRevalidation = false

	return nil
}

// applyCancellation считает штраф и возврат и фиксирует их на бронировании
func (m *Machine) applyCancellation(booking *domain.Booking, tctx TransitionContext) error {
	if tctx.Venue == nil {
		return fmt.Errorf("%w: cancellation", ErrVenueRequired)
	}

	days := booking.Interval().DaysUntil(tctx.Now)
	quote, err := m.policy.Evaluate(tctx.Venue.CancellationTier, booking.Pricing.GrandTotal, booking.Payment.AmountPaid, days)
	if err != nil {
		return fmt.Errorf("%w: applyCancellation - failed to evaluate policy: %v", ErrInternal, err)
	}

	refund := quote.SuggestedRefund
	if tctx.RefundOverride != nil {
		// Явный возврат перекрывает расчетный, штраф остается в записи
		refund = *tctx.RefundOverride
	}

	fee := quote.Fee
	now := tctx.Now
	booking.CancellationFee = &fee
	booking.CancellationRefund = &refund
	booking.CancellationReason = tctx.Note
	booking.CancelledAt = &now

	if refund > 0 {
		booking.Payment.Status = domain.PaymentStatusRefundPending
	}

	m.logger.Info("Transition: booking %s cancellation fee=%.2f refund=%.2f (%d days before event)",
		booking.Reference, fee, refund, days)

	return nil
}
