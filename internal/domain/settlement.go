package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SettlementOutcome string

const (
	SettlementReduced         SettlementOutcome = "reduced"
	SettlementCleared         SettlementOutcome = "cleared"
	SettlementNothingToSettle SettlementOutcome = "nothing_to_settle"
)

type SettlementResult struct {
	Outcome   SettlementOutcome
	Remaining decimal.Decimal
}

// Settle applies a payment from payer to counterparty against the payer's
// outstanding record. A record that would drop to zero or below is removed,
// along with the payer's entry once it owes nothing.
func (g *Group) Settle(payerID, counterpartyID uuid.UUID, amount decimal.Decimal) SettlementResult {
	nothing := SettlementResult{Outcome: SettlementNothingToSettle, Remaining: decimal.Zero}

	ei := -1
	for i := range g.Balances {
		if g.Balances[i].UserID == payerID {
			ei = i
			break
		}
	}
	if ei < 0 {
		return nothing
	}
	entry := &g.Balances[ei]

	oi := -1
	for i := range entry.OwesTo {
		if entry.OwesTo[i].CreditorID == counterpartyID {
			oi = i
			break
		}
	}
	if oi < 0 {
		return nothing
	}

	remaining := entry.OwesTo[oi].Amount.Sub(amount)
	if remaining.IsPositive() {
		entry.OwesTo[oi].Amount = remaining
		return SettlementResult{Outcome: SettlementReduced, Remaining: remaining}
	}

	entry.OwesTo = append(entry.OwesTo[:oi], entry.OwesTo[oi+1:]...)
	if len(entry.OwesTo) == 0 {
		g.Balances = append(g.Balances[:ei], g.Balances[ei+1:]...)
	}
	return SettlementResult{Outcome: SettlementCleared, Remaining: decimal.Zero}
}
