package cancellation

import (
	"github.com/m04kA/SMC-VenueService/internal/domain"
)

// Quote результат расчета условий отмены бронирования
type Quote struct {
	// FeePercent примененный процент штрафа (0..1)
	FeePercent float64
	// Fee штраф за отмену в деньгах
	Fee float64
	// SuggestedRefund рекомендуемый возврат: max(0, amountPaid - fee)
	// Вызывающая сторона может переопределить возврат явной суммой,
	// при этом штраф все равно фиксируется для аудита
	SuggestedRefund float64
}

// feeTier одна ступень тарифной сетки: штраф действует при daysUntilEvent <= MaxDays
type feeTier struct {
	MaxDays int
	Percent float64
}

// Тарифные сетки штрафов по категориям политики
// Ступени упорядочены по возрастанию MaxDays, последняя ступень - "свыше"
var (
	strictTiers = []feeTier{
		{MaxDays: 7, Percent: 0.50},
		{MaxDays: 14, Percent: 0.30},
	}
	strictBeyond = 0.10

	moderateTiers = []feeTier{
		{MaxDays: 3, Percent: 0.30},
		{MaxDays: 7, Percent: 0.20},
	}
	moderateBeyond = 0.05

	flexibleTiers = []feeTier{
		{MaxDays: 1, Percent: 0.20},
		{MaxDays: 3, Percent: 0.10},
	}
	flexibleBeyond = 0.0
)

// Policy вычисляет штраф и возврат при отмене бронирования
// по категории политики площадки и количеству дней до события
type Policy struct{}

// NewPolicy создает движок политики отмены
func NewPolicy() *Policy {
	return &Policy{}
}

// Evaluate вычисляет штраф за отмену и рекомендуемый возврат
// daysUntilEvent - дни до начала события, округленные вверх; отрицательные значения
// трактуются как 0 (событие уже началось)
func (p *Policy) Evaluate(tier domain.CancellationTier, grandTotal, amountPaid float64, daysUntilEvent int) (Quote, error) {
	if grandTotal < 0 {
		return Quote{}, ErrInvalidAmount
	}
	if daysUntilEvent < 0 {
		daysUntilEvent = 0
	}

	percent, err := feePercent(tier, daysUntilEvent)
	if err != nil {
		return Quote{}, err
	}

	fee := grandTotal * percent

	refund := amountPaid - fee
	if refund < 0 {
		refund = 0
	}

	return Quote{
		FeePercent:      percent,
		Fee:             fee,
		SuggestedRefund: refund,
	}, nil
}

// feePercent возвращает процент штрафа по сетке категории
func feePercent(tier domain.CancellationTier, daysUntilEvent int) (float64, error) {
	var tiers []feeTier
	var beyond float64

	switch tier {
	case domain.TierStrict:
		tiers, beyond = strictTiers, strictBeyond
	case domain.TierModerate:
		tiers, beyond = moderateTiers, moderateBeyond
	case domain.TierFlexible:
		tiers, beyond = flexibleTiers, flexibleBeyond
	default:
		return 0, ErrUnknownTier
	}

	for _, t := range tiers {
		if daysUntilEvent <= t.MaxDays {
			return t.Percent, nil
		}
	}
	return beyond, nil
}
