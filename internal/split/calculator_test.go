package split

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/splitledger/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestCalculate_Equally(t *testing.T) {
	users := []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New()}
	details := make([]domain.SplitDetail, len(users))
	for i, u := range users {
		details[i] = domain.SplitDetail{UserID: u}
	}

	balances, err := Calculate(dec("100"), domain.SplitTypeEqually, details, DefaultTolerance)
	require.NoError(t, err)
	require.Len(t, balances, 4)

	sum := decimal.Zero
	for i, b := range balances {
		assert.Equal(t, users[i], b.UserID)
		assert.True(t, b.Amount.Equal(dec("25")), "got %s", b.Amount)
		require.NotNil(t, details[i].Amount)
		assert.True(t, details[i].Amount.Equal(dec("25")))
		sum = sum.Add(b.Amount)
	}
	assert.True(t, sum.Equal(dec("100")))
}

func TestCalculate_EquallyDoesNotRedistributeRemainder(t *testing.T) {
	details := []domain.SplitDetail{{UserID: uuid.New()}, {UserID: uuid.New()}, {UserID: uuid.New()}}

	balances, err := Calculate(dec("100"), domain.SplitTypeEqually, details, DefaultTolerance)
	require.NoError(t, err)

	for _, b := range balances {
		assert.True(t, b.Amount.Equal(balances[0].Amount))
	}
	assert.Equal(t, "33.3333333333333333", balances[0].Amount.String())
}

func TestCalculate_Percentage(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	details := []domain.SplitDetail{
		{UserID: a, Percentage: decPtr("60")},
		{UserID: b, Percentage: decPtr("40")},
	}

	balances, err := Calculate(dec("200"), domain.SplitTypePercentage, details, DefaultTolerance)
	require.NoError(t, err)
	require.Len(t, balances, 2)

	assert.Equal(t, a, balances[0].UserID)
	assert.True(t, balances[0].Amount.Equal(dec("120")))
	assert.Equal(t, b, balances[1].UserID)
	assert.True(t, balances[1].Amount.Equal(dec("80")))
	assert.True(t, details[0].Amount.Equal(dec("120")))
	assert.True(t, details[1].Amount.Equal(dec("80")))
}

func TestCalculate_Exact(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	details := []domain.SplitDetail{
		{UserID: a, Amount: decPtr("30")},
		{UserID: b, Amount: decPtr("70")},
	}

	balances, err := Calculate(dec("100"), domain.SplitTypeExact, details, DefaultTolerance)
	require.NoError(t, err)

	assert.Equal(t, []domain.Balance{
		{UserID: a, Amount: dec("30")},
		{UserID: b, Amount: dec("70")},
	}, balances)
}

func TestCalculate_Validation(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	tests := []struct {
		name      string
		total     string
		splitType domain.SplitType
		details   []domain.SplitDetail
		wantErr   error
	}{
		{
			name:      "unknown split type",
			total:     "100",
			splitType: "half",
			details:   []domain.SplitDetail{{UserID: a}},
			wantErr:   domain.ErrInvalidSplitType,
		},
		{
			name:      "no participants",
			total:     "100",
			splitType: domain.SplitTypeEqually,
			wantErr:   domain.ErrInvalidSplit,
		},
		{
			name:      "zero total",
			total:     "0",
			splitType: domain.SplitTypeEqually,
			details:   []domain.SplitDetail{{UserID: a}},
			wantErr:   domain.ErrInvalidSplit,
		},
		{
			name:      "duplicate participant",
			total:     "100",
			splitType: domain.SplitTypeEqually,
			details:   []domain.SplitDetail{{UserID: a}, {UserID: a}},
			wantErr:   domain.ErrInvalidSplit,
		},
		{
			name:      "missing percentage",
			total:     "100",
			splitType: domain.SplitTypePercentage,
			details:   []domain.SplitDetail{{UserID: a, Percentage: decPtr("100")}, {UserID: b}},
			wantErr:   domain.ErrInvalidSplit,
		},
		{
			name:      "percentages under 100",
			total:     "100",
			splitType: domain.SplitTypePercentage,
			details:   []domain.SplitDetail{{UserID: a, Percentage: decPtr("50")}, {UserID: b, Percentage: decPtr("40")}},
			wantErr:   domain.ErrInvalidSplit,
		},
		{
			name:      "negative percentage",
			total:     "100",
			splitType: domain.SplitTypePercentage,
			details:   []domain.SplitDetail{{UserID: a, Percentage: decPtr("120")}, {UserID: b, Percentage: decPtr("-20")}},
			wantErr:   domain.ErrInvalidSplit,
		},
		{
			name:      "percentages within tolerance",
			total:     "90",
			splitType: domain.SplitTypePercentage,
			details: []domain.SplitDetail{
				{UserID: a, Percentage: decPtr("33.33")},
				{UserID: b, Percentage: decPtr("66.67")},
			},
		},
		{
			name:      "percentage amounts drift past tolerance on a large total",
			total:     "10000",
			splitType: domain.SplitTypePercentage,
			details: []domain.SplitDetail{
				{UserID: a, Percentage: decPtr("33.33")},
				{UserID: b, Percentage: decPtr("33.33")},
				{UserID: c, Percentage: decPtr("33.33")},
			},
			wantErr: domain.ErrInvalidSplit,
		},
		{
			name:      "thirds of a large total",
			total:     "10000",
			splitType: domain.SplitTypePercentage,
			details: []domain.SplitDetail{
				{UserID: a, Percentage: decPtr("33.33")},
				{UserID: b, Percentage: decPtr("33.33")},
				{UserID: c, Percentage: decPtr("33.34")},
			},
		},
		{
			name:      "missing exact amount",
			total:     "100",
			splitType: domain.SplitTypeExact,
			details:   []domain.SplitDetail{{UserID: a, Amount: decPtr("100")}, {UserID: b}},
			wantErr:   domain.ErrInvalidSplit,
		},
		{
			name:      "exact amounts exceed total",
			total:     "100",
			splitType: domain.SplitTypeExact,
			details:   []domain.SplitDetail{{UserID: a, Amount: decPtr("60")}, {UserID: b, Amount: decPtr("60")}},
			wantErr:   domain.ErrInvalidSplit,
		},
		{
			name:      "exact amounts within tolerance",
			total:     "100",
			splitType: domain.SplitTypeExact,
			details:   []domain.SplitDetail{{UserID: a, Amount: decPtr("33.33")}, {UserID: b, Amount: decPtr("66.66")}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Calculate(dec(tt.total), tt.splitType, tt.details, DefaultTolerance)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestCalculate_RejectedPercentageLeavesAmountsUnset(t *testing.T) {
	details := []domain.SplitDetail{
		{UserID: uuid.New(), Percentage: decPtr("10")},
		{UserID: uuid.New(), Percentage: decPtr("10")},
	}

	_, err := Calculate(dec("100"), domain.SplitTypePercentage, details, DefaultTolerance)
	require.ErrorIs(t, err, domain.ErrInvalidSplit)
	for _, d := range details {
		assert.Nil(t, d.Amount)
	}
}

func TestCalculator_NegativeToleranceClampsToZero(t *testing.T) {
	c := NewCalculator(dec("-1"))
	details := []domain.SplitDetail{
		{UserID: uuid.New(), Amount: decPtr("50")},
		{UserID: uuid.New(), Amount: decPtr("50")},
	}

	_, err := c.Calculate(dec("100"), domain.SplitTypeExact, details)
	require.NoError(t, err)
}

func TestCalculate_DropsPercentageOutsidePercentagePolicy(t *testing.T) {
	for _, st := range []domain.SplitType{domain.SplitTypeExact, domain.SplitTypeEqually} {
		t.Run(string(st), func(t *testing.T) {
			details := []domain.SplitDetail{
				{UserID: uuid.New(), Percentage: decPtr("70"), Amount: decPtr("50")},
				{UserID: uuid.New(), Percentage: decPtr("30"), Amount: decPtr("50")},
			}

			_, err := Calculate(dec("100"), st, details, DefaultTolerance)
			require.NoError(t, err)
			for _, d := range details {
				assert.Nil(t, d.Percentage)
			}
		})
	}
}
