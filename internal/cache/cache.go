// Package cache holds the owe-details report cache.
package cache

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/josh-kwaku/splitledger/internal/domain"
)

// ReportCache stores owe-details reports per user. A miss returns (nil, nil).
type ReportCache interface {
	GetOweDetails(ctx context.Context, userID uuid.UUID) (*domain.OweDetails, error)
	SetOweDetails(ctx context.Context, details *domain.OweDetails) error
	Invalidate(ctx context.Context, userIDs ...uuid.UUID) error
}

// Noop never stores anything.
type Noop struct{}

func (Noop) GetOweDetails(context.Context, uuid.UUID) (*domain.OweDetails, error) { return nil, nil }
func (Noop) SetOweDetails(context.Context, *domain.OweDetails) error              { return nil }
func (Noop) Invalidate(context.Context, ...uuid.UUID) error                       { return nil }

// Memory is an in-process cache without expiry.
type Memory struct {
	mu      sync.Mutex
	entries map[uuid.UUID]domain.OweDetails
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[uuid.UUID]domain.OweDetails)}
}

func (m *Memory) GetOweDetails(_ context.Context, userID uuid.UUID) (*domain.OweDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.entries[userID]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (m *Memory) SetOweDetails(_ context.Context, details *domain.OweDetails) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[details.UserID] = *details
	return nil
}

func (m *Memory) Invalidate(_ context.Context, userIDs ...uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range userIDs {
		delete(m.entries, id)
	}
	return nil
}
