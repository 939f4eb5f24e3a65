package handler

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/splitledger/internal/domain"
)

type userRefDTO struct {
	ID   uuid.UUID `json:"id"`
	Name *string   `json:"name"`
}

type splitDetailDTO struct {
	UserID     uuid.UUID        `json:"user_id"`
	Percentage *decimal.Decimal `json:"percentage,omitempty"`
	Amount     *decimal.Decimal `json:"amount"`
}

type balanceDTO struct {
	UserID uuid.UUID       `json:"user_id"`
	Amount decimal.Decimal `json:"amount"`
}

type expenseDTO struct {
	ID           uuid.UUID        `json:"id"`
	GroupID      uuid.UUID        `json:"group_id"`
	Name         string           `json:"name"`
	TotalAmount  decimal.Decimal  `json:"total_amount"`
	CreatedBy    userRefDTO       `json:"created_by"`
	SplitType    domain.SplitType `json:"split_type"`
	SplitDetails []splitDetailDTO `json:"split_details"`
	Balances     []balanceDTO     `json:"balances"`
	CreatedAt    time.Time        `json:"created_at"`
}

func toUserRefDTO(r domain.UserRef) userRefDTO {
	return userRefDTO{ID: r.ID, Name: r.Name}
}

func toExpenseDTO(e *domain.Expense) expenseDTO {
	details := make([]splitDetailDTO, len(e.SplitDetails))
	for i, d := range e.SplitDetails {
		details[i] = splitDetailDTO{UserID: d.UserID, Percentage: d.Percentage, Amount: d.Amount}
	}
	balances := make([]balanceDTO, len(e.Balances))
	for i, b := range e.Balances {
		balances[i] = balanceDTO{UserID: b.UserID, Amount: b.Amount}
	}
	return expenseDTO{
		ID:           e.ID,
		GroupID:      e.GroupID,
		Name:         e.Name,
		TotalAmount:  e.TotalAmount,
		CreatedBy:    toUserRefDTO(e.CreatedBy),
		SplitType:    e.SplitType,
		SplitDetails: details,
		Balances:     balances,
		CreatedAt:    e.CreatedAt,
	}
}

type owedToDTO struct {
	CreditorID uuid.UUID       `json:"creditor_id"`
	Amount     decimal.Decimal `json:"amount"`
}

type balanceEntryDTO struct {
	UserID uuid.UUID   `json:"user_id"`
	OwesTo []owedToDTO `json:"owes_to"`
}

type groupDTO struct {
	ID        uuid.UUID         `json:"id"`
	Name      string            `json:"name"`
	CreatedBy uuid.UUID         `json:"created_by"`
	Members   []uuid.UUID       `json:"members"`
	Expenses  []uuid.UUID       `json:"expenses"`
	Balances  []balanceEntryDTO `json:"balances"`
	CreatedAt time.Time         `json:"created_at"`
}

func toGroupDTO(g *domain.Group) groupDTO {
	balances := make([]balanceEntryDTO, len(g.Balances))
	for i, b := range g.Balances {
		owes := make([]owedToDTO, len(b.OwesTo))
		for j, o := range b.OwesTo {
			owes[j] = owedToDTO{CreditorID: o.CreditorID, Amount: o.Amount}
		}
		balances[i] = balanceEntryDTO{UserID: b.UserID, OwesTo: owes}
	}

	members := g.Members
	if members == nil {
		members = []uuid.UUID{}
	}
	expenses := g.ExpenseIDs
	if expenses == nil {
		expenses = []uuid.UUID{}
	}

	return groupDTO{
		ID:        g.ID,
		Name:      g.Name,
		CreatedBy: g.CreatedBy,
		Members:   members,
		Expenses:  expenses,
		Balances:  balances,
		CreatedAt: g.CreatedAt,
	}
}

type userDTO struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserDTO(u *domain.User) userDTO {
	return userDTO{ID: u.ID, Email: u.Email, Name: u.Name, CreatedAt: u.CreatedAt}
}
