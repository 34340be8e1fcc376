// Package quota persists per-user attempt counts for the free analysis tier.
//
// A Store keeps one monotonically non-decreasing counter per user identity.
// VIP membership is a static allow-list that lives next to the counters but is
// never persisted or incremented. Three backends are provided: a flat JSON
// file (default), Postgres, and Redis; the backing medium is selected from
// configuration at startup.
package quota

import (
	"context"
	"fmt"

	"github.com/tikscope/tikscope/internal/config"
)

// Store is the transactional quota contract. Increment must be durable before
// it returns: a caller that reports remaining attempts to the user may only do
// so after a successful Increment (write-then-respond ordering).
type Store interface {
	// Get returns the current attempt count, 0 for unknown users.
	Get(ctx context.Context, userID string) (int, error)

	// IsVIP reports allow-list membership. VIP counts are never incremented.
	IsVIP(userID string) bool

	// Increment durably persists count+1 and returns the new count.
	Increment(ctx context.Context, userID string) (int, error)

	Close() error
}

// VIPList is an immutable identity allow-list.
type VIPList map[string]struct{}

func NewVIPList(ids []string) VIPList {
	list := make(VIPList, len(ids))
	for _, id := range ids {
		list[id] = struct{}{}
	}
	return list
}

func (v VIPList) Contains(userID string) bool {
	_, ok := v[userID]
	return ok
}

// Open selects and initializes the quota backend from configuration.
// Postgres wins over Redis wins over the flat file.
func Open(cfg *config.Config) (Store, error) {
	vips := NewVIPList(cfg.VIPUsers)

	switch {
	case cfg.HasPostgresConfig():
		store, err := NewPostgresStore(cfg.PostgreDSN, vips)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres quota store: %w", err)
		}
		return store, nil
	case cfg.HasRedisConfig():
		return NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, vips), nil
	default:
		return NewFileStore(cfg.QuotaFile, vips), nil
	}
}
