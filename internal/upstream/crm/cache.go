package crm

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"sotcredit/internal/claims/ports"
)

const cacheKeyPrefix = "sotcredit:crm:"

// Cached is a read-through Redis cache in front of a CRMPort. Only answers
// are cached; errors (including not-found) always go back to the CRM on the
// next call. A failing Redis is bypassed.
type Cached struct {
	next   ports.CRMPort
	rdb    redis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

var _ ports.CRMPort = (*Cached)(nil)

type CacheOption func(*Cached)

func WithCacheLogger(logger *slog.Logger) CacheOption {
	return func(c *Cached) {
		c.logger = logger
	}
}

// NewCached wraps next. ttl must be positive.
func NewCached(next ports.CRMPort, rdb redis.Cmdable, ttl time.Duration, opts ...CacheOption) (*Cached, error) {
	if next == nil {
		return nil, errors.New("crm port is required")
	}
	if rdb == nil {
		return nil, errors.New("redis client is required")
	}
	if ttl <= 0 {
		return nil, errors.New("cache ttl must be positive")
	}
	c := &Cached{next: next, rdb: rdb, ttl: ttl, logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Cached) AccountByInvoice(ctx context.Context, invoiceNumber string) (string, error) {
	return readThrough(ctx, c, "account_by_invoice:"+invoiceNumber, func() (string, error) {
		return c.next.AccountByInvoice(ctx, invoiceNumber)
	})
}

func (c *Cached) OpcosByAccountNumber(ctx context.Context, accountNumber string) ([]string, error) {
	return readThrough(ctx, c, "opcos_by_account:"+accountNumber, func() ([]string, error) {
		return c.next.OpcosByAccountNumber(ctx, accountNumber)
	})
}

func (c *Cached) AccountExists(ctx context.Context, accountID string) (bool, error) {
	return readThrough(ctx, c, "account_exists:"+accountID, func() (bool, error) {
		return c.next.AccountExists(ctx, accountID)
	})
}

func (c *Cached) OpcoExists(ctx context.Context, opco string) (bool, error) {
	return readThrough(ctx, c, "opco_exists:"+opco, func() (bool, error) {
		return c.next.OpcoExists(ctx, opco)
	})
}

func (c *Cached) CustomerName(ctx context.Context, accountID string) (string, error) {
	return readThrough(ctx, c, "customer_name:"+accountID, func() (string, error) {
		return c.next.CustomerName(ctx, accountID)
	})
}

func (c *Cached) InvoiceItemCodes(ctx context.Context, invoiceNumber string) ([]string, error) {
	return readThrough(ctx, c, "invoice_item_codes:"+invoiceNumber, func() ([]string, error) {
		return c.next.InvoiceItemCodes(ctx, invoiceNumber)
	})
}

func readThrough[T any](ctx context.Context, c *Cached, key string, load func() (T, error)) (T, error) {
	key = cacheKeyPrefix + key

	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var hit T
		if jsonErr := json.Unmarshal(raw, &hit); jsonErr == nil {
			return hit, nil
		}
		c.logger.WarnContext(ctx, "discarding undecodable crm cache entry", "key", key)
	case !errors.Is(err, redis.Nil):
		c.logger.WarnContext(ctx, "crm cache read failed", "key", key, "error", err)
	}

	value, err := load()
	if err != nil {
		return value, err
	}
	if encoded, jsonErr := json.Marshal(value); jsonErr == nil {
		if setErr := c.rdb.Set(ctx, key, encoded, c.ttl).Err(); setErr != nil {
			c.logger.WarnContext(ctx, "crm cache write failed", "key", key, "error", setErr)
		}
	}
	return value, nil
}
