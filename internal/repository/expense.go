package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/splitledger/internal/domain"
)

const expenseSelect = `SELECT e.id, e.group_id, e.name, e.total_amount, e.created_by, u.name,
	e.split_type, e.created_at
	FROM expenses e
	LEFT JOIN users u ON u.id = e.created_by`

type ExpenseRepository struct {
	db *sql.DB
}

func NewExpenseRepository(db *sql.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// Create inserts the expense with its split details and computed balances.
func (r *ExpenseRepository) Create(ctx context.Context, tx *sql.Tx, e *domain.Expense) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO expenses (id, group_id, name, total_amount, created_by, split_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.GroupID, e.Name, e.TotalAmount, e.CreatedBy.ID, e.SplitType, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}

	for i, d := range e.SplitDetails {
		var pct decimal.NullDecimal
		if d.Percentage != nil {
			pct = decimal.NewNullDecimal(*d.Percentage)
		}
		if d.Amount == nil {
			return fmt.Errorf("Create: split detail for %s has no amount: %w", d.UserID, domain.ErrInvalidSplit)
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO expense_split_details (expense_id, position, user_id, percentage, amount)
			VALUES ($1, $2, $3, $4, $5)`,
			e.ID, i, d.UserID, pct, *d.Amount,
		)
		if err != nil {
			return fmt.Errorf("Create: split detail: %w", err)
		}
	}

	for i, b := range e.Balances {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO expense_balances (expense_id, position, user_id, amount)
			VALUES ($1, $2, $3, $4)`,
			e.ID, i, b.UserID, b.Amount,
		)
		if err != nil {
			return fmt.Errorf("Create: balance: %w", err)
		}
	}
	return nil
}

func (r *ExpenseRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Expense, error) {
	row := r.db.QueryRowContext(ctx, expenseSelect+` WHERE e.id = $1`, id)
	e, err := scanExpense(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetByID: %w", domain.ErrExpenseNotFound)
		}
		return nil, fmt.Errorf("GetByID: %w", err)
	}

	if err := r.attachLines(ctx, []*domain.Expense{e}); err != nil {
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return e, nil
}

// ListByGroup returns a group's expenses oldest first.
func (r *ExpenseRepository) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]domain.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		expenseSelect+` WHERE e.group_id = $1 ORDER BY e.created_at, e.id`, groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListByGroup: %w", err)
	}
	defer rows.Close()

	var ptrs []*domain.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("ListByGroup: scan: %w", err)
		}
		ptrs = append(ptrs, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListByGroup: rows: %w", err)
	}

	if err := r.attachLines(ctx, ptrs); err != nil {
		return nil, fmt.Errorf("ListByGroup: %w", err)
	}

	expenses := make([]domain.Expense, len(ptrs))
	for i, e := range ptrs {
		expenses[i] = *e
	}
	return expenses, nil
}

// attachLines loads split details and balances for the given expenses in
// two queries.
func (r *ExpenseRepository) attachLines(ctx context.Context, expenses []*domain.Expense) error {
	if len(expenses) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*domain.Expense, len(expenses))
	ids := make([]uuid.UUID, len(expenses))
	for i, e := range expenses {
		byID[e.ID] = e
		ids[i] = e.ID
	}
	idArray := pq.Array(uuidStrings(ids))

	rows, err := r.db.QueryContext(ctx,
		`SELECT expense_id, user_id, percentage, amount FROM expense_split_details
		WHERE expense_id = ANY($1::uuid[]) ORDER BY expense_id, position`, idArray,
	)
	if err != nil {
		return fmt.Errorf("split details: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var expenseID uuid.UUID
		var d domain.SplitDetail
		var pct decimal.NullDecimal
		var amount decimal.Decimal
		if err := rows.Scan(&expenseID, &d.UserID, &pct, &amount); err != nil {
			return fmt.Errorf("split details: scan: %w", err)
		}
		if pct.Valid {
			d.Percentage = &pct.Decimal
		}
		d.Amount = &amount
		e := byID[expenseID]
		e.SplitDetails = append(e.SplitDetails, d)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("split details: rows: %w", err)
	}

	balRows, err := r.db.QueryContext(ctx,
		`SELECT expense_id, user_id, amount FROM expense_balances
		WHERE expense_id = ANY($1::uuid[]) ORDER BY expense_id, position`, idArray,
	)
	if err != nil {
		return fmt.Errorf("balances: %w", err)
	}
	defer balRows.Close()

	for balRows.Next() {
		var expenseID uuid.UUID
		var b domain.Balance
		if err := balRows.Scan(&expenseID, &b.UserID, &b.Amount); err != nil {
			return fmt.Errorf("balances: scan: %w", err)
		}
		e := byID[expenseID]
		e.Balances = append(e.Balances, b)
	}
	return balRows.Err()
}

func scanExpense(s scanner) (*domain.Expense, error) {
	var e domain.Expense
	var creatorName sql.NullString
	err := s.Scan(
		&e.ID, &e.GroupID, &e.Name, &e.TotalAmount, &e.CreatedBy.ID, &creatorName,
		&e.SplitType, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if creatorName.Valid {
		e.CreatedBy.Name = &creatorName.String
	}
	return &e, nil
}
