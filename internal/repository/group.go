package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/splitledger/internal/domain"
)

const groupColumns = `id, name, created_by, created_at`

type GroupRepository struct {
	db *sql.DB
}

func NewGroupRepository(db *sql.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

// Create inserts the group and its ordered member list.
func (r *GroupRepository) Create(ctx context.Context, tx *sql.Tx, g *domain.Group) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO groups (id, name, created_by, created_at) VALUES ($1, $2, $3, $4)`,
		g.ID, g.Name, g.CreatedBy, g.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}

	for i, m := range g.Members {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO group_members (group_id, user_id, position) VALUES ($1, $2, $3)`,
			g.ID, m, i,
		)
		if err != nil {
			if isPQCode(err, pqForeignKeyViolation) {
				return fmt.Errorf("Create: member %s: %w", m, domain.ErrUserNotFound)
			}
			return fmt.Errorf("Create: member %s: %w", m, err)
		}
	}
	return nil
}

func (r *GroupRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+groupColumns+` FROM groups WHERE id = $1`, id,
	)
	g, err := r.load(ctx, r.db, row)
	if err != nil {
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return g, nil
}

// GetForUpdate locks the group row for the rest of tx and loads the group
// with its members, expense references and balances.
func (r *GroupRepository) GetForUpdate(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*domain.Group, error) {
	row := tx.QueryRowContext(ctx,
		`SELECT `+groupColumns+` FROM groups WHERE id = $1 FOR UPDATE`, id,
	)
	g, err := r.load(ctx, tx, row)
	if err != nil {
		return nil, fmt.Errorf("GetForUpdate: %w", err)
	}
	return g, nil
}

// IsMember reports whether userID belongs to the group. A missing group has
// no members.
func (r *GroupRepository) IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error) {
	var member bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM group_members WHERE group_id = $1 AND user_id = $2)`, groupID, userID,
	).Scan(&member)
	if err != nil {
		return false, fmt.Errorf("IsMember: %w", err)
	}
	return member, nil
}

// AppendExpense links an expense to the end of the group's expense list.
// Linking the same expense twice is a no-op.
func (r *GroupRepository) AppendExpense(ctx context.Context, tx *sql.Tx, groupID, expenseID uuid.UUID) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO group_expenses (group_id, expense_id, position)
		SELECT $1, $2, COALESCE(MAX(position) + 1, 0) FROM group_expenses WHERE group_id = $1
		ON CONFLICT (group_id, expense_id) DO NOTHING`,
		groupID, expenseID,
	)
	if err != nil {
		return fmt.Errorf("AppendExpense: %w", err)
	}
	return nil
}

// ReplaceBalances overwrites the stored balance records of a group.
// Records with a non-positive amount are dropped.
func (r *GroupRepository) ReplaceBalances(ctx context.Context, tx *sql.Tx, groupID uuid.UUID, entries []domain.BalanceEntry) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM group_balances WHERE group_id = $1`, groupID); err != nil {
		return fmt.Errorf("ReplaceBalances: delete: %w", err)
	}

	pos := 0
	for _, e := range entries {
		for _, o := range e.OwesTo {
			if !o.Amount.IsPositive() {
				continue
			}
			_, err := tx.ExecContext(ctx,
				`INSERT INTO group_balances (group_id, debtor_id, creditor_id, position, amount)
				VALUES ($1, $2, $3, $4, $5)`,
				groupID, e.UserID, o.CreditorID, pos, o.Amount,
			)
			if err != nil {
				return fmt.Errorf("ReplaceBalances: insert: %w", err)
			}
			pos++
		}
	}
	return nil
}

func (r *GroupRepository) load(ctx context.Context, q querier, row *sql.Row) (*domain.Group, error) {
	var g domain.Group
	if err := row.Scan(&g.ID, &g.Name, &g.CreatedBy, &g.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrGroupNotFound
		}
		return nil, err
	}

	var err error
	if g.Members, err = queryIDs(ctx, q,
		`SELECT user_id FROM group_members WHERE group_id = $1 ORDER BY position`, g.ID,
	); err != nil {
		return nil, fmt.Errorf("members: %w", err)
	}
	if g.ExpenseIDs, err = queryIDs(ctx, q,
		`SELECT expense_id FROM group_expenses WHERE group_id = $1 ORDER BY position`, g.ID,
	); err != nil {
		return nil, fmt.Errorf("expenses: %w", err)
	}
	if g.Balances, err = loadBalances(ctx, q, g.ID); err != nil {
		return nil, fmt.Errorf("balances: %w", err)
	}
	return &g, nil
}

func loadBalances(ctx context.Context, q querier, groupID uuid.UUID) ([]domain.BalanceEntry, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT debtor_id, creditor_id, amount FROM group_balances
		WHERE group_id = $1 ORDER BY position`, groupID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.BalanceEntry
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var debtor, creditor uuid.UUID
		var amount decimal.Decimal
		if err := rows.Scan(&debtor, &creditor, &amount); err != nil {
			return nil, err
		}
		i, ok := index[debtor]
		if !ok {
			entries = append(entries, domain.BalanceEntry{UserID: debtor})
			i = len(entries) - 1
			index[debtor] = i
		}
		entries[i].OwesTo = append(entries[i].OwesTo, domain.OwedTo{CreditorID: creditor, Amount: amount})
	}
	return entries, rows.Err()
}

func queryIDs(ctx context.Context, q querier, query string, args ...any) ([]uuid.UUID, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
