package verification

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// CachedStore decorates a Store with a Redis read cache for point lookups.
// The receipt detail view is read-heavy while receipts themselves change at
// most once (the tx link), so cached entries are dropped on attach and
// otherwise expire on TTL. Cache failures degrade to the inner store.
type CachedStore struct {
	inner  Store
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedStore(inner Store, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedStore {
	return &CachedStore{inner: inner, client: client, ttl: ttl, logger: logger}
}

func cacheKey(receiptID string) string {
	return "receipt:" + receiptID
}

func (s *CachedStore) Create(ctx context.Context, receipt ExecutionReceipt) error {
	return s.inner.Create(ctx, receipt)
}

func (s *CachedStore) Get(ctx context.Context, receiptID string) (ExecutionReceipt, error) {
	raw, err := s.client.Get(ctx, cacheKey(receiptID)).Bytes()
	if err == nil {
		var receipt ExecutionReceipt
		if err := json.Unmarshal(raw, &receipt); err == nil {
			return receipt, nil
		}
		// Corrupt entry: fall through to the store and rewrite it.
	} else if !errors.Is(err, redis.Nil) {
		s.logger.WarnContext(ctx, "receipt cache read failed", "receipt_id", receiptID, "error", err.Error())
	}

	receipt, err := s.inner.Get(ctx, receiptID)
	if err != nil {
		return ExecutionReceipt{}, err
	}

	if raw, err := json.Marshal(receipt); err == nil {
		if err := s.client.Set(ctx, cacheKey(receiptID), raw, s.ttl).Err(); err != nil {
			s.logger.WarnContext(ctx, "receipt cache write failed", "receipt_id", receiptID, "error", err.Error())
		}
	}
	return receipt, nil
}

func (s *CachedStore) AttachExternalTx(ctx context.Context, receiptID, txHash string) error {
	if err := s.inner.AttachExternalTx(ctx, receiptID, txHash); err != nil {
		return err
	}
	// Drop instead of rewrite; the next Get repopulates from the store.
	if err := s.client.Del(ctx, cacheKey(receiptID)).Err(); err != nil {
		s.logger.WarnContext(ctx, "receipt cache invalidation failed", "receipt_id", receiptID, "error", err.Error())
	}
	return nil
}

func (s *CachedStore) ListByWallet(ctx context.Context, walletAddress string) ([]ExecutionReceipt, error) {
	return s.inner.ListByWallet(ctx, walletAddress)
}
