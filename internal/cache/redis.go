package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/josh-kwaku/splitledger/internal/domain"
)

const oweDetailsKeyPrefix = "owe-details:"

type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

// Connect parses a redis:// URL and verifies the server is reachable.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("Connect: parse url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("Connect: ping: %w", err)
	}
	return client, nil
}

func oweDetailsKey(userID uuid.UUID) string {
	return oweDetailsKeyPrefix + userID.String()
}

func (r *Redis) GetOweDetails(ctx context.Context, userID uuid.UUID) (*domain.OweDetails, error) {
	val, err := r.client.Get(ctx, oweDetailsKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetOweDetails: %w", err)
	}

	var d domain.OweDetails
	if err := json.Unmarshal(val, &d); err != nil {
		return nil, fmt.Errorf("GetOweDetails: decode: %w", err)
	}
	return &d, nil
}

func (r *Redis) SetOweDetails(ctx context.Context, details *domain.OweDetails) error {
	val, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("SetOweDetails: encode: %w", err)
	}
	if err := r.client.Set(ctx, oweDetailsKey(details.UserID), val, r.ttl).Err(); err != nil {
		return fmt.Errorf("SetOweDetails: %w", err)
	}
	return nil
}

func (r *Redis) Invalidate(ctx context.Context, userIDs ...uuid.UUID) error {
	if len(userIDs) == 0 {
		return nil
	}
	keys := make([]string, len(userIDs))
	for i, id := range userIDs {
		keys[i] = oweDetailsKey(id)
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("Invalidate: %w", err)
	}
	return nil
}
