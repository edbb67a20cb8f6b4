package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ardelio/heart-risk-api/internal/domain"
)

const (
	defaultResultKey = "assessment:default"
	defaultResultTTL = 10 * time.Minute
)

// ResultCache caches the generator's output for the fixed default
// profile served by the anonymous read endpoint
type ResultCache struct {
	client *Client
}

// NewResultCache creates a new result cache
func NewResultCache(client *Client) *ResultCache {
	return &ResultCache{client: client}
}

// GetDefault retrieves the cached default-profile result, nil on miss
func (c *ResultCache) GetDefault(ctx context.Context) (*domain.RiskResult, error) {
	data, err := c.client.rdb.Get(ctx, defaultResultKey).Bytes()
	if err != nil {
		return nil, nil // Cache miss
	}

	var result domain.RiskResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}

	return &result, nil
}

// SetDefault caches the default-profile result
func (c *ResultCache) SetDefault(ctx context.Context, result *domain.RiskResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	return c.client.rdb.Set(ctx, defaultResultKey, data, defaultResultTTL).Err()
}
