// Package redis wraps the go-redis client behind the narrow interfaces
// the API middleware consume: idempotency reservations and fixed-window
// auth throttling, all under the kitto: key namespace.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kittohq/kitto-backend/pkg/config"
)

const (
	keyNamespace      = "kitto"
	idempotencyPrefix = "idempotency"
	rateLimitPrefix   = "rate_limit"
)

var errNotReady = errors.New("redis: client not ready")

// commander is the slice of redis commands the wrapper actually issues.
// Tests swap in an in-memory implementation.
type commander interface {
	Ping(context.Context) *redis.StatusCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	Get(context.Context, string) *redis.StringCmd
	SetNX(context.Context, string, any, time.Duration) *redis.BoolCmd
	Incr(context.Context, string) *redis.IntCmd
	Expire(context.Context, string, time.Duration) *redis.BoolCmd
	Del(context.Context, ...string) *redis.IntCmd
}

type Client struct {
	cmds commander
	raw  *redis.Client
}

// Pinger is the health-check surface handed to the readiness endpoint.
type Pinger interface {
	Ping(context.Context) error
}

// IdempotencyStore is what the idempotency middleware needs: reserve a
// key, read back a stored record, and build namespaced keys.
type IdempotencyStore interface {
	Get(context.Context, string) (string, error)
	SetNX(context.Context, string, any, time.Duration) (bool, error)
	IdempotencyKey(scope, id string) string
	Del(context.Context, ...string) error
}

// RateLimiter counts hits in a fixed window, used for login and
// registration throttling.
type RateLimiter interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// New dials redis from config and fails fast if the server is
// unreachable.
func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	opts, err := buildOptions(cfg)
	if err != nil {
		return nil, err
	}
	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Client{cmds: raw, raw: raw}, nil
}

// buildOptions prefers a full URL when one is configured; discrete
// address fields fill any gap the URL leaves.
func buildOptions(cfg config.RedisConfig) (*redis.Options, error) {
	if cfg.URL == "" && cfg.Address == "" {
		return nil, errors.New("redis url or address is required")
	}

	var opts *redis.Options
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: cfg.Address, Password: cfg.Password, DB: cfg.DB}
	}

	if opts.DB == 0 {
		opts.DB = cfg.DB
	}
	if opts.PoolSize == 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if opts.MinIdleConns == 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}
	return opts, nil
}

// IdempotencyKey builds the storage key for one idempotent request
// within a scope, e.g. kitto:idempotency:orders_submit:<operator:key>.
func (c *Client) IdempotencyKey(scope, id string) string {
	return key(idempotencyPrefix, scope, id)
}

// RateLimitKey builds the counter key for one throttling scope.
func (c *Client) RateLimitKey(scope string) string {
	return key(rateLimitPrefix, scope)
}

func (c *Client) Get(ctx context.Context, k string) (string, error) {
	if c.cmds == nil {
		return "", errNotReady
	}
	return c.cmds.Get(ctx, k).Result()
}

func (c *Client) Set(ctx context.Context, k string, value any, ttl time.Duration) error {
	if c.cmds == nil {
		return errNotReady
	}
	return c.cmds.Set(ctx, k, value, ttl).Err()
}

// SetNX reserves a key. The first caller wins; all later callers see
// false until the TTL expires.
func (c *Client) SetNX(ctx context.Context, k string, value any, ttl time.Duration) (bool, error) {
	if c.cmds == nil {
		return false, errNotReady
	}
	return c.cmds.SetNX(ctx, k, value, ttl).Result()
}

func (c *Client) Incr(ctx context.Context, k string) (int64, error) {
	if c.cmds == nil {
		return 0, errNotReady
	}
	return c.cmds.Incr(ctx, k).Result()
}

// IncrWithTTL increments a counter and stamps the window TTL when the
// counter is fresh. Later increments leave the expiry alone so the
// window stays fixed rather than sliding.
func (c *Client) IncrWithTTL(ctx context.Context, k string, ttl time.Duration) (int64, error) {
	count, err := c.Incr(ctx, k)
	if err != nil {
		return 0, err
	}
	if ttl > 0 && count == 1 {
		if _, expErr := c.cmds.Expire(ctx, k, ttl).Result(); expErr != nil {
			return count, expErr
		}
	}
	return count, nil
}

// FixedWindowAllow reports whether a hit within the scope stays under
// the limit for the current window, along with the running count.
func (c *Client) FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error) {
	count, err := c.IncrWithTTL(ctx, c.RateLimitKey(scope), window)
	if err != nil {
		return false, 0, err
	}
	return count <= limit, count, nil
}

func (c *Client) Del(ctx context.Context, keys ...string) error {
	if c.cmds == nil {
		return errNotReady
	}
	return c.cmds.Del(ctx, keys...).Err()
}

func (c *Client) Ping(ctx context.Context) error {
	if c.cmds == nil {
		return errNotReady
	}
	return c.cmds.Ping(ctx).Err()
}

func (c *Client) Close() error {
	if c.raw == nil {
		return nil
	}
	return c.raw.Close()
}

// key joins non-empty parts under the kitto namespace.
func key(parts ...string) string {
	joined := []string{keyNamespace}
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			joined = append(joined, trimmed)
		}
	}
	return strings.Join(joined, ":")
}
