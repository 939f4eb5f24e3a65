package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/josh-kwaku/splitledger/internal/domain"
)

type ReportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// OwedByUser sums, per expense creator, the split amounts assigned to userID.
func (r *ReportRepository) OwedByUser(ctx context.Context, userID uuid.UUID) ([]domain.OwedByUser, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT e.created_by, u.name, SUM(d.amount)
		FROM expense_split_details d
		JOIN expenses e ON e.id = d.expense_id
		LEFT JOIN users u ON u.id = e.created_by
		WHERE d.user_id = $1
		GROUP BY e.created_by, u.name
		ORDER BY u.name NULLS LAST, e.created_by`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("OwedByUser: %w", err)
	}
	defer rows.Close()

	out := []domain.OwedByUser{}
	for rows.Next() {
		var row domain.OwedByUser
		var name sql.NullString
		if err := rows.Scan(&row.CreatedBy.ID, &name, &row.TotalOwed); err != nil {
			return nil, fmt.Errorf("OwedByUser: scan: %w", err)
		}
		if name.Valid {
			row.CreatedBy.Name = &name.String
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("OwedByUser: rows: %w", err)
	}
	return out, nil
}

// OwedToUser sums, per participant, the split amounts on expenses created by
// userID.
func (r *ReportRepository) OwedToUser(ctx context.Context, userID uuid.UUID) ([]domain.OwedToUser, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT d.user_id, u.name, SUM(d.amount)
		FROM expenses e
		JOIN expense_split_details d ON d.expense_id = e.id
		LEFT JOIN users u ON u.id = d.user_id
		WHERE e.created_by = $1
		GROUP BY d.user_id, u.name
		ORDER BY u.name NULLS LAST, d.user_id`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("OwedToUser: %w", err)
	}
	defer rows.Close()

	out := []domain.OwedToUser{}
	for rows.Next() {
		var row domain.OwedToUser
		var name sql.NullString
		if err := rows.Scan(&row.OwedBy.ID, &name, &row.TotalOwedTo); err != nil {
			return nil, fmt.Errorf("OwedToUser: scan: %w", err)
		}
		if name.Valid {
			row.OwedBy.Name = &name.String
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("OwedToUser: rows: %w", err)
	}
	return out, nil
}
