package pricing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	"github.com/m04kA/SMC-VenueService/internal/service/pricing"
)

func testVenue(basePrice, pricePerHour float64) *domain.Venue {
	return &domain.Venue{
		ID:           1,
		Name:         "Grand Hall",
		BasePrice:    basePrice,
		PricePerHour: pricePerHour,
		Status:       domain.VenueStatusActive,
		Active:       true,
	}
}

func testInterval(hours float64) domain.Interval {
	start := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	return domain.NewInterval(start, start.Add(time.Duration(hours*float64(time.Hour))))
}

func TestCompute_VenueAndServices(t *testing.T) {
	// basePrice=200, pricePerHour=50, 3h, one service qty=2 @ 30, taxRate=0.1
	calc := pricing.NewCalculator()

	breakdown, err := calc.Compute(pricing.Input{
		Venue:    testVenue(200, 50),
		Interval: testInterval(3),
		Services: []domain.LineItem{
			{ItemID: 7, Name: "Sound system", UnitPrice: 30, Quantity: 2},
		},
		TaxRate: 0.1,
	})

	require.NoError(t, err)
	assert.InDelta(t, 350.0, breakdown.VenuePrice, 1e-9)
	assert.InDelta(t, 60.0, breakdown.ServicesCost, 1e-9)
	assert.InDelta(t, 410.0, breakdown.TotalBeforeTax, 1e-9)
	assert.InDelta(t, 41.0, breakdown.TaxAmount, 1e-9)
	assert.InDelta(t, 451.0, breakdown.GrandTotal, 1e-9)
}

func TestCompute_FractionalHoursNotRounded(t *testing.T) {
	calc := pricing.NewCalculator()

	breakdown, err := calc.Compute(pricing.Input{
		Venue:    testVenue(0, 100),
		Interval: testInterval(1.5),
		TaxRate:  0,
	})

	require.NoError(t, err)
	assert.InDelta(t, 150.0, breakdown.VenuePrice, 1e-9)
}

func TestCompute_PercentDiscountsShareOneBase(t *testing.T) {
	// Two 10% discounts on a 1000 subtotal must each take 100, not compound.
	calc := pricing.NewCalculator()

	breakdown, err := calc.Compute(pricing.Input{
		Venue:    testVenue(1000, 0),
		Interval: testInterval(2),
		Discounts: []domain.Discount{
			{Label: "early bird", Kind: domain.DiscountPercent, Value: 10},
			{Label: "member", Kind: domain.DiscountPercent, Value: 10},
		},
		TaxRate: 0,
	})

	require.NoError(t, err)
	require.Len(t, breakdown.Discounts, 2)
	assert.InDelta(t, 100.0, breakdown.Discounts[0].Applied, 1e-9)
	assert.InDelta(t, 100.0, breakdown.Discounts[1].Applied, 1e-9)
	assert.InDelta(t, 800.0, breakdown.TotalBeforeTax, 1e-9)
}

func TestCompute_MixedDiscountsAndCatering(t *testing.T) {
	calc := pricing.NewCalculator()

	breakdown, err := calc.Compute(pricing.Input{
		Venue:    testVenue(100, 50),
		Interval: testInterval(2),
		Equipment: []domain.LineItem{
			{ItemID: 3, Name: "Projector", UnitPrice: 40, Quantity: 1},
		},
		Catering: &domain.CateringBlock{
			MenuID: 5, MenuName: "Buffet", PerHeadRate: 12, HeadCount: 10,
		},
		AdditionalCosts: []domain.AdditionalCost{
			{Label: "security", Amount: 50},
		},
		Discounts: []domain.Discount{
			{Label: "promo", Kind: domain.DiscountFlat, Value: 30},
			{Label: "loyalty", Kind: domain.DiscountPercent, Value: 20},
		},
		TaxRate: 0.1,
	})

	require.NoError(t, err)
	// subtotal = 200 + 40 + 120 + 50 = 410; discounts = 30 + 82 = 112
	assert.InDelta(t, 40.0, breakdown.EquipmentCost, 1e-9)
	assert.InDelta(t, 120.0, breakdown.CateringCost, 1e-9)
	assert.InDelta(t, 298.0, breakdown.TotalBeforeTax, 1e-9)
	assert.InDelta(t, breakdown.TotalBeforeTax+breakdown.TaxAmount, breakdown.GrandTotal, 1e-9)
}

func TestCompute_TotalFlooredAtZero(t *testing.T) {
	calc := pricing.NewCalculator()

	breakdown, err := calc.Compute(pricing.Input{
		Venue:    testVenue(50, 0),
		Interval: testInterval(1),
		Discounts: []domain.Discount{
			{Label: "goodwill", Kind: domain.DiscountFlat, Value: 500},
		},
		TaxRate: 0.1,
	})

	require.NoError(t, err)
	assert.Zero(t, breakdown.TotalBeforeTax)
	assert.Zero(t, breakdown.TaxAmount)
	assert.Zero(t, breakdown.GrandTotal)
}

func TestCompute_Deterministic(t *testing.T) {
	calc := pricing.NewCalculator()

	input := pricing.Input{
		Venue:    testVenue(321.55, 47.25),
		Interval: testInterval(3.75),
		Services: []domain.LineItem{
			{ItemID: 1, Name: "DJ", UnitPrice: 99.99, Quantity: 1},
		},
		Discounts: []domain.Discount{
			{Label: "promo", Kind: domain.DiscountPercent, Value: 7.5},
		},
		TaxRate: 0.0825,
	}

	first, err := calc.Compute(input)
	require.NoError(t, err)
	second, err := calc.Compute(input)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCompute_Validation(t *testing.T) {
	calc := pricing.NewCalculator()
	venue := testVenue(100, 10)

	tests := []struct {
		name    string
		input   pricing.Input
		wantErr error
	}{
		{
			name: "inverted interval",
			input: pricing.Input{
				Venue:    venue,
				Interval: domain.NewInterval(testInterval(1).End, testInterval(1).Start),
			},
			wantErr: pricing.ErrInvalidInterval,
		},
		{
			name: "negative tax rate",
			input: pricing.Input{
				Venue:    venue,
				Interval: testInterval(1),
				TaxRate:  -0.1,
			},
			wantErr: pricing.ErrInvalidTaxRate,
		},
		{
			name: "negative quantity",
			input: pricing.Input{
				Venue:    venue,
				Interval: testInterval(1),
				Services: []domain.LineItem{{Name: "x", UnitPrice: 10, Quantity: -1}},
			},
			wantErr: pricing.ErrInvalidLineItem,
		},
		{
			name: "unknown discount kind",
			input: pricing.Input{
				Venue:     venue,
				Interval:  testInterval(1),
				Discounts: []domain.Discount{{Label: "x", Kind: "half-off", Value: 1}},
			},
			wantErr: pricing.ErrInvalidDiscount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := calc.Compute(tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDepositFor(t *testing.T) {
	calc := pricing.NewCalculator()

	assert.InDelta(t, 300.0, calc.DepositFor(1000, 0), 1e-9, "default is 30 percent")
	assert.InDelta(t, 500.0, calc.DepositFor(1000, 0.5), 1e-9)
}
