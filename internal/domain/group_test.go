package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestGroupAddDebt(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	g := &Group{}

	g.AddDebt(b, a, dec("10"))
	g.AddDebt(b, a, dec("5.25"))
	g.AddDebt(c, a, dec("3"))
	g.AddDebt(b, c, dec("1"))
	g.AddDebt(a, a, dec("7"))
	g.AddDebt(c, b, dec("0"))

	require.Len(t, g.Balances, 2)
	assert.Equal(t, b, g.Balances[0].UserID)
	require.Len(t, g.Balances[0].OwesTo, 2)
	assert.True(t, g.Balances[0].OwesTo[0].Amount.Equal(dec("15.25")))
	assert.Equal(t, c, g.Balances[0].OwesTo[1].CreditorID)
	assert.Equal(t, c, g.Balances[1].UserID)
	require.Len(t, g.Balances[1].OwesTo, 1)
	assert.Nil(t, g.BalanceFor(a))
}

func TestGroupSettle(t *testing.T) {
	payer, creditor, other := uuid.New(), uuid.New(), uuid.New()

	newGroup := func() *Group {
		g := &Group{}
		g.AddDebt(payer, creditor, dec("50"))
		g.AddDebt(payer, other, dec("5"))
		return g
	}

	tests := []struct {
		name          string
		payer         uuid.UUID
		counterparty  uuid.UUID
		amount        string
		wantOutcome   SettlementOutcome
		wantRemaining string
		wantRecords   int
	}{
		{"partial payment reduces", payer, creditor, "30", SettlementReduced, "20", 2},
		{"exact payment clears", payer, creditor, "50", SettlementCleared, "0", 1},
		{"overpayment clears", payer, creditor, "80", SettlementCleared, "0", 1},
		{"no entry for payer", creditor, payer, "10", SettlementNothingToSettle, "0", 2},
		{"no record for counterparty", payer, uuid.New(), "10", SettlementNothingToSettle, "0", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGroup()
			res := g.Settle(tt.payer, tt.counterparty, dec(tt.amount))

			assert.Equal(t, tt.wantOutcome, res.Outcome)
			assert.True(t, res.Remaining.Equal(dec(tt.wantRemaining)), "remaining %s", res.Remaining)

			entry := g.BalanceFor(payer)
			require.NotNil(t, entry)
			assert.Len(t, entry.OwesTo, tt.wantRecords)
			for _, o := range entry.OwesTo {
				assert.True(t, o.Amount.IsPositive())
			}
		})
	}
}

func TestGroupSettle_RemovesEmptyEntry(t *testing.T) {
	payer, creditor := uuid.New(), uuid.New()
	g := &Group{}
	g.AddDebt(payer, creditor, dec("12"))

	res := g.Settle(payer, creditor, dec("12"))

	assert.Equal(t, SettlementCleared, res.Outcome)
	assert.Empty(t, g.Balances)
}

func TestSplitTypeIsValid(t *testing.T) {
	assert.True(t, SplitTypePercentage.IsValid())
	assert.True(t, SplitTypeExact.IsValid())
	assert.True(t, SplitTypeEqually.IsValid())
	assert.False(t, SplitType("half").IsValid())
}
