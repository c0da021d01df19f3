package cancellation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	"github.com/m04kA/SMC-VenueService/internal/service/cancellation"
)

func TestEvaluate_FeeTable(t *testing.T) {
	policy := cancellation.NewPolicy()

	tests := []struct {
		tier        domain.CancellationTier
		days        int
		wantPercent float64
	}{
		{domain.TierStrict, 0, 0.50},
		{domain.TierStrict, 7, 0.50},
		{domain.TierStrict, 8, 0.30},
		{domain.TierStrict, 14, 0.30},
		{domain.TierStrict, 15, 0.10},
		{domain.TierStrict, 60, 0.10},

		{domain.TierModerate, 1, 0.30},
		{domain.TierModerate, 3, 0.30},
		{domain.TierModerate, 4, 0.20},
		{domain.TierModerate, 7, 0.20},
		{domain.TierModerate, 8, 0.05},

		{domain.TierFlexible, 0, 0.20},
		{domain.TierFlexible, 1, 0.20},
		{domain.TierFlexible, 2, 0.10},
		{domain.TierFlexible, 3, 0.10},
		{domain.TierFlexible, 4, 0.0},
		{domain.TierFlexible, 30, 0.0},
	}

	for _, tt := range tests {
		quote, err := policy.Evaluate(tt.tier, 1000, 0, tt.days)
		require.NoError(t, err)
		assert.InDelta(t, tt.wantPercent, quote.FeePercent, 1e-9,
			"tier=%s days=%d", tt.tier, tt.days)
		assert.InDelta(t, 1000*tt.wantPercent, quote.Fee, 1e-9)
	}
}

func TestEvaluate_RefundFromAmountPaid(t *testing.T) {
	// grandTotal=1000, moderate, 5 days -> fee=200; amountPaid=500 -> refund=300
	policy := cancellation.NewPolicy()

	quote, err := policy.Evaluate(domain.TierModerate, 1000, 500, 5)
	require.NoError(t, err)

	assert.InDelta(t, 200.0, quote.Fee, 1e-9)
	assert.InDelta(t, 300.0, quote.SuggestedRefund, 1e-9)
}

func TestEvaluate_RefundNeverNegative(t *testing.T) {
	policy := cancellation.NewPolicy()

	// Paid less than the fee: nothing to refund, but also nothing owed back.
	quote, err := policy.Evaluate(domain.TierStrict, 1000, 100, 2)
	require.NoError(t, err)

	assert.InDelta(t, 500.0, quote.Fee, 1e-9)
	assert.Zero(t, quote.SuggestedRefund)
}

func TestEvaluate_FeeMonotonicallyDecreases(t *testing.T) {
	policy := cancellation.NewPolicy()

	for _, tier := range []domain.CancellationTier{domain.TierFlexible, domain.TierModerate, domain.TierStrict} {
		prev := 2.0
		for days := 0; days <= 30; days++ {
			quote, err := policy.Evaluate(tier, 1000, 0, days)
			require.NoError(t, err)
			assert.LessOrEqual(t, quote.FeePercent, prev,
				"tier=%s: fee percent must not grow with more days until event", tier)
			prev = quote.FeePercent
		}
	}
}

func TestEvaluate_NegativeDaysTreatedAsZero(t *testing.T) {
	policy := cancellation.NewPolicy()

	quote, err := policy.Evaluate(domain.TierFlexible, 1000, 1000, -3)
	require.NoError(t, err)
	assert.InDelta(t, 0.20, quote.FeePercent, 1e-9)
}

func TestEvaluate_Errors(t *testing.T) {
	policy := cancellation.NewPolicy()

	_, err := policy.Evaluate("premium", 1000, 0, 5)
	assert.ErrorIs(t, err, cancellation.ErrUnknownTier)

	_, err = policy.Evaluate(domain.TierStrict, -1, 0, 5)
	assert.ErrorIs(t, err, cancellation.ErrInvalidAmount)
}
