package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Group struct {
	ID         uuid.UUID
	Name       string
	CreatedBy  uuid.UUID
	Members    []uuid.UUID
	ExpenseIDs []uuid.UUID
	Balances   []BalanceEntry
	CreatedAt  time.Time
}

// BalanceEntry lists what one user owes to other members of a group.
// Every OwedTo amount is strictly positive.
type BalanceEntry struct {
	UserID uuid.UUID
	OwesTo []OwedTo
}

type OwedTo struct {
	CreditorID uuid.UUID
	Amount     decimal.Decimal
}

func (g *Group) HasMember(userID uuid.UUID) bool {
	for _, m := range g.Members {
		if m == userID {
			return true
		}
	}
	return false
}

// BalanceFor returns the entry for userID, or nil.
func (g *Group) BalanceFor(userID uuid.UUID) *BalanceEntry {
	for i := range g.Balances {
		if g.Balances[i].UserID == userID {
			return &g.Balances[i]
		}
	}
	return nil
}

// AddDebt folds amount into the debtor's record for creditor, creating the
// entry and record as needed. Non-positive amounts are ignored.
func (g *Group) AddDebt(debtorID, creditorID uuid.UUID, amount decimal.Decimal) {
	if !amount.IsPositive() || debtorID == creditorID {
		return
	}

	entry := g.BalanceFor(debtorID)
	if entry == nil {
		g.Balances = append(g.Balances, BalanceEntry{UserID: debtorID})
		entry = &g.Balances[len(g.Balances)-1]
	}

	for i := range entry.OwesTo {
		if entry.OwesTo[i].CreditorID == creditorID {
			entry.OwesTo[i].Amount = entry.OwesTo[i].Amount.Add(amount)
			return
		}
	}
	entry.OwesTo = append(entry.OwesTo, OwedTo{CreditorID: creditorID, Amount: amount})
}
