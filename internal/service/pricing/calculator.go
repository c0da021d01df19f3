package pricing

import (
	"fmt"

	"github.com/m04kA/SMC-VenueService/internal/domain"
)

// Calculator вычисляет детализированную стоимость бронирования площадки
// Расчет детерминированный: одинаковые входные данные всегда дают идентичный результат
// Любое изменение интервала или позиций требует полного пересчета (расчет не инкрементальный)
type Calculator struct{}

// NewCalculator создает новый калькулятор стоимости
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Compute вычисляет полную детализацию стоимости:
//   - venuePrice = basePrice + pricePerHour * durationHours (дробные часы не округляются)
//   - servicesCost / equipmentCost = сумма unitPrice * quantity по позициям
//   - cateringCost = ставка за человека * количество человек (ставка резолвится вызывающей стороной)
//   - процентные скидки считаются от subtotal ДО применения любых скидок (без компаундинга)
//   - totalBeforeTax ограничивается снизу нулем
//   - taxAmount = totalBeforeTax * taxRate; grandTotal = totalBeforeTax + taxAmount
func (c *Calculator) Compute(in Input) (domain.PricingBreakdown, error) {
	if err := validateInput(in); err != nil {
		return domain.PricingBreakdown{}, err
	}

	venuePrice := in.Venue.BasePrice + in.Venue.PricePerHour*in.Interval.Hours()

	servicesCost := sumLineItems(in.Services)
	equipmentCost := sumLineItems(in.Equipment)

	var cateringCost float64
	if in.Catering != nil {
		cateringCost = in.Catering.Total()
	}

	var additionalTotal float64
	for _, cost := range in.AdditionalCosts {
		additionalTotal += cost.Amount
	}

	// База для процентных скидок - subtotal до применения любых скидок
	subtotal := venuePrice + servicesCost + equipmentCost + cateringCost + additionalTotal

	discounts := make([]domain.Discount, len(in.Discounts))
	var discountTotal float64
	for i, d := range in.Discounts {
		applied := d.Value
		if d.Kind == domain.DiscountPercent {
			applied = subtotal * d.Value / 100
		}
		discounts[i] = domain.Discount{
			Label:   d.Label,
			Kind:    d.Kind,
			Value:   d.Value,
			Applied: applied,
		}
		discountTotal += applied
	}

	totalBeforeTax := subtotal - discountTotal
	if totalBeforeTax < 0 {
		totalBeforeTax = 0
	}

	taxAmount := totalBeforeTax * in.TaxRate

	return domain.PricingBreakdown{
		VenuePrice:      venuePrice,
		ServicesCost:    servicesCost,
		EquipmentCost:   equipmentCost,
		CateringCost:    cateringCost,
		AdditionalCosts: in.AdditionalCosts,
		Discounts:       discounts,
		TaxRate:         in.TaxRate,
		TaxAmount:       taxAmount,
		TotalBeforeTax:  totalBeforeTax,
		GrandTotal:      totalBeforeTax + taxAmount,
	}, nil
}

// DepositFor вычисляет размер депозита от итоговой суммы
// При percent <= 0 используется дефолтный процент депозита
func (c *Calculator) DepositFor(grandTotal, percent float64) float64 {
	if percent <= 0 {
		percent = domain.DefaultDepositPercent
	}
	return grandTotal * percent
}

func validateInput(in Input) error {
	if !in.Interval.IsValid() {
		return ErrInvalidInterval
	}
	if in.TaxRate < 0 {
		return ErrInvalidTaxRate
	}
	for _, li := range in.Services {
		if err := validateLineItem(li); err != nil {
			return err
		}
	}
	for _, li := range in.Equipment {
		if err := validateLineItem(li); err != nil {
			return err
		}
	}
	if in.Catering != nil && (in.Catering.PerHeadRate < 0 || in.Catering.HeadCount < 0) {
		return fmt.Errorf("%w: negative catering rate or head count", ErrInvalidLineItem)
	}
	for _, d := range in.Discounts {
		if d.Value < 0 {
			return fmt.Errorf("%w: %q has negative value", ErrInvalidDiscount, d.Label)
		}
		if d.Kind != domain.DiscountFlat && d.Kind != domain.DiscountPercent {
			return fmt.Errorf("%w: %q has unknown kind %q", ErrInvalidDiscount, d.Label, d.Kind)
		}
	}
	return nil
}

func validateLineItem(li domain.LineItem) error {
	if li.UnitPrice < 0 || li.Quantity < 0 {
		return fmt.Errorf("%w: %q has negative price or quantity", ErrInvalidLineItem, li.Name)
	}
	return nil
}

func sumLineItems(items []domain.LineItem) float64 {
	var total float64
	for _, li := range items {
		total += li.Total()
	}
	return total
}
