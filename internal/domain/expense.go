package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SplitType string

const (
	SplitTypePercentage SplitType = "percentage"
	SplitTypeExact      SplitType = "exact"
	SplitTypeEqually    SplitType = "equally"
)

func (t SplitType) IsValid() bool {
	switch t {
	case SplitTypePercentage, SplitTypeExact, SplitTypeEqually:
		return true
	}
	return false
}

// SplitDetail is one participant's input to a split. Percentage is only set
// for the percentage policy; Amount holds the resolved owed amount once the
// split has been calculated.
type SplitDetail struct {
	UserID     uuid.UUID
	Percentage *decimal.Decimal
	Amount     *decimal.Decimal
}

type Balance struct {
	UserID uuid.UUID
	Amount decimal.Decimal
}

type Expense struct {
	ID           uuid.UUID
	GroupID      uuid.UUID
	Name         string
	TotalAmount  decimal.Decimal
	CreatedBy    UserRef
	SplitType    SplitType
	SplitDetails []SplitDetail
	Balances     []Balance
	CreatedAt    time.Time
}
