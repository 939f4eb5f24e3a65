package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/splitledger/internal/cache"
	"github.com/josh-kwaku/splitledger/internal/domain"
	"github.com/josh-kwaku/splitledger/internal/testutil"
)

func sampleDetails(userID uuid.UUID) *domain.OweDetails {
	name := "Alice"
	return &domain.OweDetails{
		UserID: userID,
		OwedByUser: []domain.OwedByUser{
			{CreatedBy: domain.UserRef{ID: uuid.New(), Name: &name}, TotalOwed: decimal.RequireFromString("12.50")},
		},
		OwedToUser: []domain.OwedToUser{
			{OwedBy: domain.UserRef{ID: uuid.New()}, TotalOwedTo: decimal.RequireFromString("3")},
		},
	}
}

func exerciseCache(t *testing.T, c cache.ReportCache) {
	t.Helper()
	ctx := context.Background()
	userID := uuid.New()

	got, err := c.GetOweDetails(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, got)

	want := sampleDetails(userID)
	require.NoError(t, c.SetOweDetails(ctx, want))

	got, err = c.GetOweDetails(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, userID, got.UserID)
	require.Len(t, got.OwedByUser, 1)
	assert.Equal(t, "Alice", *got.OwedByUser[0].CreatedBy.Name)
	assert.True(t, got.OwedByUser[0].TotalOwed.Equal(decimal.RequireFromString("12.5")))
	require.Len(t, got.OwedToUser, 1)
	assert.Nil(t, got.OwedToUser[0].OwedBy.Name)

	require.NoError(t, c.Invalidate(ctx, uuid.New(), userID))
	got, err = c.GetOweDetails(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisCache(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	exerciseCache(t, cache.NewRedis(client, time.Minute))
}

func TestRedisCache_Expiry(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	c := cache.NewRedis(client, 50*time.Millisecond)
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, c.SetOweDetails(ctx, sampleDetails(userID)))
	require.Eventually(t, func() bool {
		got, err := c.GetOweDetails(ctx, userID)
		return err == nil && got == nil
	}, 2*time.Second, 20*time.Millisecond)
}

func TestMemoryCache(t *testing.T) {
	exerciseCache(t, cache.NewMemory())
}

func TestNoopCache(t *testing.T) {
	ctx := context.Background()
	var c cache.ReportCache = cache.Noop{}
	userID := uuid.New()

	require.NoError(t, c.SetOweDetails(ctx, sampleDetails(userID)))
	got, err := c.GetOweDetails(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, got)
	require.NoError(t, c.Invalidate(ctx, userID))
}
