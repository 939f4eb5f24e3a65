package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OwedByUser is the total a user owes to one expense creator.
type OwedByUser struct {
	CreatedBy UserRef
	TotalOwed decimal.Decimal
}

// OwedToUser is the total one participant owes to the report's user.
type OwedToUser struct {
	OwedBy      UserRef
	TotalOwedTo decimal.Decimal
}

type OweDetails struct {
	UserID     uuid.UUID
	OwedByUser []OwedByUser
	OwedToUser []OwedToUser
}
