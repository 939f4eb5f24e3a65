package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/splitledger/internal/cache"
	"github.com/josh-kwaku/splitledger/internal/domain"
	"github.com/josh-kwaku/splitledger/internal/logging"
)

type RecordExpenseRequest struct {
	GroupID      uuid.UUID
	Name         string
	TotalAmount  decimal.Decimal
	SplitType    domain.SplitType
	SplitDetails []domain.SplitDetail
	CreatorID    uuid.UUID
}

type ExpenseService struct {
	db           *sql.DB
	expenses     expenseRepository
	groups       groupRepository
	calc         splitCalculator
	reports      cache.ReportCache
	foldBalances bool
}

func NewExpenseService(
	db *sql.DB,
	expenses expenseRepository,
	groups groupRepository,
	calc splitCalculator,
	reports cache.ReportCache,
	foldBalances bool,
) *ExpenseService {
	if reports == nil {
		reports = cache.Noop{}
	}
	return &ExpenseService{
		db:           db,
		expenses:     expenses,
		groups:       groups,
		calc:         calc,
		reports:      reports,
		foldBalances: foldBalances,
	}
}

// RecordExpense splits the expense, stores it and links it to its group in a
// single transaction. Nothing is written when the split is rejected.
func (s *ExpenseService) RecordExpense(ctx context.Context, req RecordExpenseRequest) (*domain.Expense, error) {
	log := logging.FromContext(ctx)

	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("RecordExpense: empty name: %w", domain.ErrInvalidRequest)
	}

	details := make([]domain.SplitDetail, len(req.SplitDetails))
	copy(details, req.SplitDetails)

	balances, err := s.calc.Calculate(req.TotalAmount, req.SplitType, details)
	if err != nil {
		return nil, fmt.Errorf("RecordExpense: %w", err)
	}

	expense := &domain.Expense{
		ID:           uuid.New(),
		GroupID:      req.GroupID,
		Name:         strings.TrimSpace(req.Name),
		TotalAmount:  req.TotalAmount,
		CreatedBy:    domain.UserRef{ID: req.CreatorID},
		SplitType:    req.SplitType,
		SplitDetails: details,
		Balances:     balances,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.persist(ctx, expense); err != nil {
		return nil, fmt.Errorf("RecordExpense: %w", err)
	}

	s.invalidateReports(ctx, expense)

	log.Info("expense recorded",
		"expense_id", expense.ID,
		"group_id", expense.GroupID,
		"split_type", expense.SplitType,
		"total_amount", expense.TotalAmount.String(),
		"participants", len(expense.SplitDetails),
	)

	stored, err := s.expenses.GetByID(ctx, expense.ID)
	if err != nil {
		log.Warn("reload recorded expense", "expense_id", expense.ID, "error", err)
		return expense, nil
	}
	return stored, nil
}

func (s *ExpenseService) persist(ctx context.Context, e *domain.Expense) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("persist: begin tx: %w", err)
	}
	defer tx.Rollback()

	group, err := s.groups.GetForUpdate(ctx, tx, e.GroupID)
	if err != nil {
		return fmt.Errorf("persist: %w", err)
	}
	if !group.HasMember(e.CreatedBy.ID) {
		return fmt.Errorf("persist: creator %s not in group: %w", e.CreatedBy.ID, domain.ErrGroupNotFound)
	}

	if err := s.expenses.Create(ctx, tx, e); err != nil {
		return fmt.Errorf("persist: %w", err)
	}

	if err := s.groups.AppendExpense(ctx, tx, group.ID, e.ID); err != nil {
		return fmt.Errorf("persist: %w", err)
	}

	if s.foldBalances {
		for _, b := range e.Balances {
			group.AddDebt(b.UserID, e.CreatedBy.ID, b.Amount)
		}
		if err := s.groups.ReplaceBalances(ctx, tx, group.ID, group.Balances); err != nil {
			return fmt.Errorf("persist: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("persist: commit: %w", err)
	}
	return nil
}

func (s *ExpenseService) invalidateReports(ctx context.Context, e *domain.Expense) {
	ids := make([]uuid.UUID, 0, len(e.SplitDetails)+1)
	ids = append(ids, e.CreatedBy.ID)
	for _, d := range e.SplitDetails {
		ids = append(ids, d.UserID)
	}
	if err := s.reports.Invalidate(ctx, ids...); err != nil {
		logging.FromContext(ctx).Warn("invalidate owe-details cache", "expense_id", e.ID, "error", err)
	}
}

// ListExpenses returns the group's expenses oldest first. Groups the caller
// does not belong to are reported as not found.
func (s *ExpenseService) ListExpenses(ctx context.Context, callerID, groupID uuid.UUID) ([]domain.Expense, error) {
	member, err := s.groups.IsMember(ctx, groupID, callerID)
	if err != nil {
		return nil, fmt.Errorf("ListExpenses: %w", err)
	}
	if !member {
		return nil, fmt.Errorf("ListExpenses: %w", domain.ErrGroupNotFound)
	}

	expenses, err := s.expenses.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("ListExpenses: %w", err)
	}
	if expenses == nil {
		expenses = []domain.Expense{}
	}
	return expenses, nil
}

func (s *ExpenseService) GetExpense(ctx context.Context, callerID, id uuid.UUID) (*domain.Expense, error) {
	e, err := s.expenses.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("GetExpense: %w", err)
	}

	member, err := s.groups.IsMember(ctx, e.GroupID, callerID)
	if err != nil {
		return nil, fmt.Errorf("GetExpense: %w", err)
	}
	if !member {
		return nil, fmt.Errorf("GetExpense: %w", domain.ErrExpenseNotFound)
	}
	return e, nil
}
