package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/SscSPs/savings_ledger_app/internal/core/domain"
)

const activeAccountTypesKey = "savings:catalog:active"

// AccountTypeCache keeps the active product list as JSON in redis.
type AccountTypeCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAccountTypeCache instantiates the cache helper.
func NewAccountTypeCache(client *redis.Client, ttl time.Duration) *AccountTypeCache {
	return &AccountTypeCache{client: client, ttl: ttl}
}

func (c *AccountTypeCache) GetActiveAccountTypes(ctx context.Context) ([]domain.AccountType, bool, error) {
	raw, err := c.client.Get(ctx, activeAccountTypesKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache: get %s: %w", activeAccountTypesKey, err)
	}
	var types []domain.AccountType
	if err := json.Unmarshal(raw, &types); err != nil {
		// A corrupt entry is treated as a miss and overwritten by the next write.
		return nil, false, nil
	}
	return types, true, nil
}

func (c *AccountTypeCache) SetActiveAccountTypes(ctx context.Context, types []domain.AccountType) error {
	raw, err := json.Marshal(types)
	if err != nil {
		return fmt.Errorf("cache: encode account types: %w", err)
	}
	if err := c.client.Set(ctx, activeAccountTypesKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache: set %s: %w", activeAccountTypesKey, err)
	}
	return nil
}

func (c *AccountTypeCache) InvalidateAccountTypes(ctx context.Context) error {
	if err := c.client.Del(ctx, activeAccountTypesKey).Err(); err != nil {
		return fmt.Errorf("cache: del %s: %w", activeAccountTypesKey, err)
	}
	return nil
}
