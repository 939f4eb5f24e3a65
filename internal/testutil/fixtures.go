package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/josh-kwaku/splitledger/internal/domain"
)

const TestPassword = "password123"

func SeedTestUser(t *testing.T, db *sql.DB, email, name string) *domain.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	_, err = db.Exec(
		`INSERT INTO users (id, email, name, password_hash, created_at) VALUES ($1, $2, $3, $4, $5)`,
		u.ID, u.Email, u.Name, u.PasswordHash, u.CreatedAt,
	)
	if err != nil {
		t.Fatalf("seed test user %s: %v", email, err)
	}
	return u
}

// SeedTestGroup creates a group owned by creator. The creator is the first
// member, followed by members in order.
func SeedTestGroup(t *testing.T, db *sql.DB, name string, creator uuid.UUID, members ...uuid.UUID) *domain.Group {
	t.Helper()

	g := &domain.Group{
		ID:        uuid.New(),
		Name:      name,
		CreatedBy: creator,
		Members:   append([]uuid.UUID{creator}, members...),
		CreatedAt: time.Now().UTC(),
	}

	if _, err := db.Exec(
		`INSERT INTO groups (id, name, created_by, created_at) VALUES ($1, $2, $3, $4)`,
		g.ID, g.Name, g.CreatedBy, g.CreatedAt,
	); err != nil {
		t.Fatalf("seed test group %s: %v", name, err)
	}

	for i, m := range g.Members {
		if _, err := db.Exec(
			`INSERT INTO group_members (group_id, user_id, position) VALUES ($1, $2, $3)`,
			g.ID, m, i,
		); err != nil {
			t.Fatalf("seed group member %s: %v", m, err)
		}
	}
	return g
}

func SeedTestBalance(t *testing.T, db *sql.DB, groupID, debtor, creditor uuid.UUID, amount string) {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO group_balances (group_id, debtor_id, creditor_id, position, amount)
		SELECT $1, $2, $3, COALESCE(MAX(position) + 1, 0), $4 FROM group_balances WHERE group_id = $1`,
		groupID, debtor, creditor, decimal.RequireFromString(amount),
	)
	if err != nil {
		t.Fatalf("seed balance %s -> %s: %v", debtor, creditor, err)
	}
}

func CountGroupExpenses(t *testing.T, db *sql.DB, groupID uuid.UUID) int {
	t.Helper()

	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM group_expenses WHERE group_id = $1`, groupID).Scan(&count)
	if err != nil {
		t.Fatalf("count group expenses %s: %v", groupID, err)
	}
	return count
}

func CountExpenses(t *testing.T, db *sql.DB) int {
	t.Helper()

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM expenses`).Scan(&count); err != nil {
		t.Fatalf("count expenses: %v", err)
	}
	return count
}
