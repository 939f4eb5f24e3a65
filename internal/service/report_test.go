package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/splitledger/internal/cache"
	"github.com/josh-kwaku/splitledger/internal/domain"
)

type fakeReportRepo struct {
	owedBy    []domain.OwedByUser
	owedTo    []domain.OwedToUser
	owedByErr error
	calls     int
}

func (f *fakeReportRepo) OwedByUser(_ context.Context, _ uuid.UUID) ([]domain.OwedByUser, error) {
	return f.owedBy, f.owedByErr
}

func (f *fakeReportRepo) OwedToUser(_ context.Context, _ uuid.UUID) ([]domain.OwedToUser, error) {
	f.calls++
	return f.owedTo, nil
}

func TestReportService_NilRowsBecomeEmptyLists(t *testing.T) {
	svc := NewReportService(&fakeReportRepo{}, nil)

	details, err := svc.OweDetails(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, details.OwedByUser)
	assert.NotNil(t, details.OwedToUser)
}

func TestReportService_QueryErrorPropagates(t *testing.T) {
	boom := errors.New("connection reset")
	svc := NewReportService(&fakeReportRepo{owedByErr: boom}, cache.NewMemory())

	_, err := svc.OweDetails(context.Background(), uuid.New())
	require.ErrorIs(t, err, boom)
}

func TestReportService_ServesFromCache(t *testing.T) {
	repo := &fakeReportRepo{
		owedTo: []domain.OwedToUser{{OwedBy: domain.UserRef{ID: uuid.New()}, TotalOwedTo: decimal.NewFromInt(7)}},
	}
	memo := cache.NewMemory()
	svc := NewReportService(repo, memo)
	userID := uuid.New()

	first, err := svc.OweDetails(context.Background(), userID)
	require.NoError(t, err)
	second, err := svc.OweDetails(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.calls)

	require.NoError(t, memo.Invalidate(context.Background(), userID))
	_, err = svc.OweDetails(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
}
