package service

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/splitledger/internal/domain"
)

type userRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistingIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error)
}

type groupRepository interface {
	Create(ctx context.Context, tx *sql.Tx, g *domain.Group) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Group, error)
	GetForUpdate(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*domain.Group, error)
	IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error)
	AppendExpense(ctx context.Context, tx *sql.Tx, groupID, expenseID uuid.UUID) error
	ReplaceBalances(ctx context.Context, tx *sql.Tx, groupID uuid.UUID, entries []domain.BalanceEntry) error
}

type expenseRepository interface {
	Create(ctx context.Context, tx *sql.Tx, e *domain.Expense) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Expense, error)
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]domain.Expense, error)
}

type reportRepository interface {
	OwedByUser(ctx context.Context, userID uuid.UUID) ([]domain.OwedByUser, error)
	OwedToUser(ctx context.Context, userID uuid.UUID) ([]domain.OwedToUser, error)
}

type splitCalculator interface {
	Calculate(total decimal.Decimal, splitType domain.SplitType, details []domain.SplitDetail) ([]domain.Balance, error)
}
