// Copyright (c) 2026 Tomebase. All rights reserved.
// Author: dev@tomebase.app

package redis

import (
	stdctx "context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tomebase/tomebase/internal/platform/constants"
)

// RevocationStore tracks individually revoked access tokens by their JTI.
//
// # Why Redis?
//
// Revocation entries are checked on every authenticated request, so they
// must be cheap to read, and they only need to live as long as the token
// itself. A keyed TTL entry gives both properties for free.
type RevocationStore struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRevocationStore wraps an existing Redis client.
func NewRevocationStore(client *redis.Client, logger *slog.Logger) *RevocationStore {
	return &RevocationStore{
		client: client,
		logger: logger,
	}
}

// Revoke marks a token as revoked until its natural expiry.
//
// timeToLive should cover the token's remaining lifetime; after that the
// entry is useless because signature validation rejects the token anyway.
func (store *RevocationStore) Revoke(context stdctx.Context, tokenID string, timeToLive time.Duration) error {
	key := constants.RedisPrefixRevokedToken + tokenID
	if err := store.client.Set(context, key, "1", timeToLive).Err(); err != nil {
		return fmt.Errorf("redis: failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token appears in the revocation set.
//
// It fails open: if Redis is unreachable, the token is treated as valid
// and the failure is logged, so an outage degrades revocation rather
// than the whole API.
func (store *RevocationStore) IsRevoked(context stdctx.Context, tokenID string) bool {
	key := constants.RedisPrefixRevokedToken + tokenID

	exists, err := store.client.Exists(context, key).Result()
	if err != nil {
		store.logger.WarnContext(context, "token_revocation_check_failed",
			slog.String("error", err.Error()),
		)
		return false
	}

	return exists > 0
}
