package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/josh-kwaku/splitledger/internal/domain"
	"github.com/josh-kwaku/splitledger/internal/logging"
)

type CreateGroupRequest struct {
	Name      string
	CreatorID uuid.UUID
	Members   []uuid.UUID
}

type GroupService struct {
	db     *sql.DB
	groups groupRepository
	users  userRepository
}

func NewGroupService(db *sql.DB, groups groupRepository, users userRepository) *GroupService {
	return &GroupService{db: db, groups: groups, users: users}
}

// CreateGroup creates a group with the creator as its first member. Duplicate
// members are collapsed; every member must be a registered user.
func (s *GroupService) CreateGroup(ctx context.Context, req CreateGroupRequest) (*domain.Group, error) {
	log := logging.FromContext(ctx)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("CreateGroup: empty name: %w", domain.ErrInvalidRequest)
	}

	members := []uuid.UUID{req.CreatorID}
	seen := map[uuid.UUID]bool{req.CreatorID: true}
	for _, m := range req.Members {
		if !seen[m] {
			seen[m] = true
			members = append(members, m)
		}
	}

	found, err := s.users.ExistingIDs(ctx, members)
	if err != nil {
		return nil, fmt.Errorf("CreateGroup: %w", err)
	}
	for _, m := range members {
		if !found[m] {
			return nil, fmt.Errorf("CreateGroup: member %s: %w", m, domain.ErrUserNotFound)
		}
	}

	group := &domain.Group{
		ID:         uuid.New(),
		Name:       name,
		CreatedBy:  req.CreatorID,
		Members:    members,
		ExpenseIDs: []uuid.UUID{},
		CreatedAt:  time.Now().UTC(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("CreateGroup: begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := s.groups.Create(ctx, tx, group); err != nil {
		return nil, fmt.Errorf("CreateGroup: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("CreateGroup: commit: %w", err)
	}

	log.Info("group created", "group_id", group.ID, "members", len(group.Members))
	return group, nil
}

// GetGroup returns the group to its members; anyone else gets ErrGroupNotFound.
func (s *GroupService) GetGroup(ctx context.Context, callerID, id uuid.UUID) (*domain.Group, error) {
	g, err := s.groups.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("GetGroup: %w", err)
	}
	if !g.HasMember(callerID) {
		return nil, fmt.Errorf("GetGroup: %w", domain.ErrGroupNotFound)
	}
	return g, nil
}
