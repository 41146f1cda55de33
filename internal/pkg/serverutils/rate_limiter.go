package serverutils

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// RateLimiter enforces a sliding-window request limit per client.
// Backed by a Redis sorted set when Redis is reachable; a process-local
// window otherwise, so a missing Redis never takes requests down.
type RateLimiter struct {
	limit  int
	window time.Duration
	rdb    *redis.Client

	mu      sync.Mutex
	local   map[string][]time.Time
	sweepAt time.Time
}

func NewRateLimiter(redisURL string, limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		limit:   limit,
		window:  window,
		local:   make(map[string][]time.Time),
		sweepAt: time.Now(),
	}

	if redisURL != "" {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			log.Printf("[WARN] Invalid Redis URL, rate limiter falling back to in-memory: %v", err)
			return rl
		}
		client := redis.NewClient(opts)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[WARN] Redis unreachable, rate limiter falling back to in-memory: %v", err)
			return rl
		}
		rl.rdb = client
	}

	return rl
}

// Allow reports whether the client may make another request now.
func (rl *RateLimiter) Allow(ctx context.Context, clientId string) bool {
	if rl.rdb != nil {
		allowed, err := rl.allowRedis(ctx, clientId)
		if err == nil {
			return allowed
		}
		log.Printf("[WARN] Redis rate limit check failed, using in-memory window: %v", err)
	}
	return rl.allowLocal(clientId)
}

func (rl *RateLimiter) allowRedis(ctx context.Context, clientId string) (bool, error) {
	now := time.Now()
	key := "ratelimit:" + clientId
	cutoff := now.Add(-rl.window)

	pipe := rl.rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", cutoff.UnixNano()))
	card := pipe.ZCard(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	if card.Val() >= int64(rl.limit) {
		return false, nil
	}

	pipe = rl.rdb.TxPipeline()
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.UnixNano()), Member: now.UnixNano()})
	pipe.Expire(ctx, key, rl.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (rl *RateLimiter) allowLocal(clientId string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-rl.window)

	if now.Sub(rl.sweepAt) > time.Minute {
		rl.sweepLocked(cutoff)
		rl.sweepAt = now
	}

	window := rl.local[clientId]
	kept := window[:0]
	for _, t := range window {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}

	if len(kept) >= rl.limit {
		rl.local[clientId] = kept
		return false
	}

	rl.local[clientId] = append(kept, now)
	return true
}

func (rl *RateLimiter) sweepLocked(cutoff time.Time) {
	for id, window := range rl.local {
		kept := window[:0]
		for _, t := range window {
			if t.After(cutoff) {
				kept = append(kept, t)
			}
		}
		if len(kept) == 0 {
			delete(rl.local, id)
			continue
		}
		rl.local[id] = kept
	}
}

// ClientId identifies the caller: bearer token first, then proxy
// header, then remote address.
func ClientId(ctx *fiber.Ctx) string {
	authHeader := ctx.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return authHeader
	}

	forwardedFor := ctx.Get("X-Forwarded-For")
	if forwardedFor != "" {
		return strings.TrimSpace(strings.Split(forwardedFor, ",")[0])
	}

	return ctx.IP()
}

// RateLimitMiddleware rejects requests over the sliding-window limit.
func RateLimitMiddleware(rl *RateLimiter) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if !rl.Allow(ctx.Context(), ClientId(ctx)) {
			message := fmt.Sprintf("Rate limit exceeded: %d requests per %d seconds", rl.limit, int(rl.window.Seconds()))
			return ctx.Status(fiber.StatusTooManyRequests).JSON(ErrorResponse(message))
		}
		return ctx.Next()
	}
}
