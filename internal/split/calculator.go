package split

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/splitledger/internal/domain"
)

// DivisionPrecision is the number of decimal places kept when dividing a
// total into equal shares.
const DivisionPrecision = 16

var hundred = decimal.NewFromInt(100)

// DefaultTolerance is the allowed drift between the split sum and its target.
var DefaultTolerance = decimal.RequireFromString("0.01")

// Calculator resolves split details into per-user balances.
type Calculator struct {
	tolerance decimal.Decimal
}

func NewCalculator(tolerance decimal.Decimal) *Calculator {
	if tolerance.IsNegative() {
		tolerance = decimal.Zero
	}
	return &Calculator{tolerance: tolerance}
}

func (c *Calculator) Calculate(total decimal.Decimal, splitType domain.SplitType, details []domain.SplitDetail) ([]domain.Balance, error) {
	return Calculate(total, splitType, details, c.tolerance)
}

// Calculate resolves each detail's owed amount under splitType, writes it back
// into details, and returns the balances in the same order.
func Calculate(total decimal.Decimal, splitType domain.SplitType, details []domain.SplitDetail, tolerance decimal.Decimal) ([]domain.Balance, error) {
	if !splitType.IsValid() {
		return nil, fmt.Errorf("Calculate: %q: %w", splitType, domain.ErrInvalidSplitType)
	}
	if len(details) == 0 {
		return nil, fmt.Errorf("Calculate: no participants: %w", domain.ErrInvalidSplit)
	}
	if !total.IsPositive() {
		return nil, fmt.Errorf("Calculate: total %s: %w", total, domain.ErrInvalidSplit)
	}
	if err := checkUniqueUsers(details); err != nil {
		return nil, err
	}

	if splitType != domain.SplitTypePercentage {
		for i := range details {
			details[i].Percentage = nil
		}
	}

	var err error
	switch splitType {
	case domain.SplitTypePercentage:
		err = resolvePercentage(total, details, tolerance)
	case domain.SplitTypeExact:
		err = resolveExact(total, details, tolerance)
	case domain.SplitTypeEqually:
		resolveEqually(total, details)
	}
	if err != nil {
		return nil, err
	}

	balances := make([]domain.Balance, len(details))
	for i, d := range details {
		balances[i] = domain.Balance{UserID: d.UserID, Amount: *d.Amount}
	}
	return balances, nil
}

func resolvePercentage(total decimal.Decimal, details []domain.SplitDetail, tolerance decimal.Decimal) error {
	sum := decimal.Zero
	for i, d := range details {
		if d.Percentage == nil {
			clearAmounts(details)
			return fmt.Errorf("resolvePercentage: user %s has no percentage: %w", d.UserID, domain.ErrInvalidSplit)
		}
		if d.Percentage.IsNegative() {
			clearAmounts(details)
			return fmt.Errorf("resolvePercentage: user %s has negative percentage: %w", d.UserID, domain.ErrInvalidSplit)
		}
		sum = sum.Add(*d.Percentage)
		amount := d.Percentage.Div(hundred).Mul(total)
		details[i].Amount = &amount
	}

	if !withinTolerance(sum, hundred, tolerance) {
		clearAmounts(details)
		return fmt.Errorf("resolvePercentage: percentages sum to %s: %w", sum, domain.ErrInvalidSplit)
	}

	resolved := decimal.Zero
	for _, d := range details {
		resolved = resolved.Add(*d.Amount)
	}
	if !withinTolerance(resolved, total, tolerance) {
		clearAmounts(details)
		return fmt.Errorf("resolvePercentage: amounts sum to %s, total is %s: %w", resolved, total, domain.ErrInvalidSplit)
	}
	return nil
}

func resolveExact(total decimal.Decimal, details []domain.SplitDetail, tolerance decimal.Decimal) error {
	sum := decimal.Zero
	for _, d := range details {
		if d.Amount == nil {
			return fmt.Errorf("resolveExact: user %s has no amount: %w", d.UserID, domain.ErrInvalidSplit)
		}
		if d.Amount.IsNegative() {
			return fmt.Errorf("resolveExact: user %s has negative amount: %w", d.UserID, domain.ErrInvalidSplit)
		}
		sum = sum.Add(*d.Amount)
	}

	if !withinTolerance(sum, total, tolerance) {
		return fmt.Errorf("resolveExact: amounts sum to %s, total is %s: %w", sum, total, domain.ErrInvalidSplit)
	}
	return nil
}

// resolveEqually gives every participant total/n. The remainder is not
// redistributed, so the shares may drift from total in the last digit.
func resolveEqually(total decimal.Decimal, details []domain.SplitDetail) {
	share := total.DivRound(decimal.NewFromInt(int64(len(details))), DivisionPrecision)
	for i := range details {
		amount := share
		details[i].Amount = &amount
	}
}

func checkUniqueUsers(details []domain.SplitDetail) error {
	seen := make(map[uuid.UUID]struct{}, len(details))
	for _, d := range details {
		if d.UserID == uuid.Nil {
			return fmt.Errorf("checkUniqueUsers: missing user: %w", domain.ErrInvalidSplit)
		}
		if _, ok := seen[d.UserID]; ok {
			return fmt.Errorf("checkUniqueUsers: user %s listed twice: %w", d.UserID, domain.ErrInvalidSplit)
		}
		seen[d.UserID] = struct{}{}
	}
	return nil
}

func withinTolerance(got, want, tolerance decimal.Decimal) bool {
	return got.Sub(want).Abs().LessThanOrEqual(tolerance)
}

func clearAmounts(details []domain.SplitDetail) {
	for i := range details {
		details[i].Amount = nil
	}
}
