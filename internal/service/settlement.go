package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/splitledger/internal/domain"
	"github.com/josh-kwaku/splitledger/internal/logging"
)

type SettleUpRequest struct {
	GroupID        uuid.UUID
	PayerID        uuid.UUID
	CounterpartyID uuid.UUID
	Amount         decimal.Decimal
}

type SettlementService struct {
	db     *sql.DB
	groups groupRepository
}

func NewSettlementService(db *sql.DB, groups groupRepository) *SettlementService {
	return &SettlementService{db: db, groups: groups}
}

// SettleUp applies a payment against what the payer owes the counterparty in
// the group. The group row stays locked until the new balances are written.
func (s *SettlementService) SettleUp(ctx context.Context, req SettleUpRequest) (*domain.SettlementResult, error) {
	log := logging.FromContext(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("SettleUp: %w", domain.ErrInvalidAmount)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("SettleUp: begin tx: %w", err)
	}
	defer tx.Rollback()

	group, err := s.groups.GetForUpdate(ctx, tx, req.GroupID)
	if err != nil {
		return nil, fmt.Errorf("SettleUp: %w", err)
	}
	if !group.HasMember(req.PayerID) {
		return nil, fmt.Errorf("SettleUp: payer %s not in group: %w", req.PayerID, domain.ErrGroupNotFound)
	}

	result := group.Settle(req.PayerID, req.CounterpartyID, req.Amount)
	if result.Outcome == domain.SettlementNothingToSettle {
		log.Info("nothing to settle",
			"group_id", req.GroupID,
			"payer_id", req.PayerID,
			"counterparty_id", req.CounterpartyID,
		)
		return &result, nil
	}

	if err := s.groups.ReplaceBalances(ctx, tx, group.ID, group.Balances); err != nil {
		return nil, fmt.Errorf("SettleUp: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("SettleUp: commit: %w", err)
	}

	log.Info("settlement applied",
		"group_id", req.GroupID,
		"payer_id", req.PayerID,
		"counterparty_id", req.CounterpartyID,
		"amount", req.Amount.String(),
		"outcome", result.Outcome,
		"remaining", result.Remaining.String(),
	)

	return &result, nil
}
