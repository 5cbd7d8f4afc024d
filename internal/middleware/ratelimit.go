package middleware

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"cafehub/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// FailPolicy decides what happens to a request when Redis cannot be reached.
type FailPolicy int

const (
	// FailOpen lets the request through.
	FailOpen FailPolicy = iota
	// FailClosed answers 503.
	FailClosed
)

// Rule is a named request budget: at most Max requests per Window for one subject.
type Rule struct {
	Name   string
	Max    int
	Window time.Duration
	Policy FailPolicy
}

// Budgets for the write endpoints.
var (
	SignupRule     = Rule{Name: "signup", Max: 5, Window: 10 * time.Minute}
	LoginRule      = Rule{Name: "login", Max: 10, Window: 5 * time.Minute}
	CreateCafeRule = Rule{Name: "create_cafe", Max: 10, Window: 10 * time.Minute}
	LikeRule       = Rule{Name: "like", Max: 60, Window: time.Minute}
)

var errNoLimitStore = errors.New("rate limit store not configured")

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// RateLimiter counts requests per rule and subject in Redis fixed windows.
type RateLimiter struct {
	rdb     *redis.Client
	enabled bool
}

// NewRateLimiter returns a limiter backed by rdb. Limits are only enforced
// outside the development and test environments.
func NewRateLimiter(rdb *redis.Client, env string) *RateLimiter {
	enabled := true
	switch env {
	case "", "development", "test":
		enabled = false
	}
	return &RateLimiter{rdb: rdb, enabled: enabled}
}

// Enabled reports whether limits are enforced.
func (l *RateLimiter) Enabled() bool {
	return l.enabled
}

// Allow records one request by subject against rule.
func (l *RateLimiter) Allow(ctx context.Context, rule Rule, subject string) (Decision, error) {
	if !l.enabled {
		return Decision{Allowed: true, Remaining: rule.Max}, nil
	}
	if l.rdb == nil {
		return Decision{}, errNoLimitStore
	}

	key := fmt.Sprintf("rl:%s:%s", rule.Name, subject)
	count, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		return Decision{}, err
	}
	if count == 1 {
		if err := l.rdb.Expire(ctx, key, rule.Window).Err(); err != nil {
			return Decision{}, err
		}
	}

	remaining := rule.Max - int(count)
	if remaining >= 0 {
		return Decision{Allowed: true, Remaining: remaining}, nil
	}

	ttl, err := l.rdb.PTTL(ctx, key).Result()
	if err != nil || ttl < 0 {
		ttl = rule.Window
	}
	return Decision{Allowed: false, RetryAfter: ttl}, nil
}

// Handler enforces rule for the signed-in user, or the client IP when anonymous.
func (l *RateLimiter) Handler(rule Rule) fiber.Handler {
	return func(c *fiber.Ctx) error {
		subject := "ip:" + c.IP()
		if uid, ok := c.Locals("userID").(uint); ok && uid != 0 {
			subject = "user:" + strconv.FormatUint(uint64(uid), 10)
		}

		decision, err := l.Allow(c.UserContext(), rule, subject)
		if err != nil {
			if rule.Policy == FailClosed {
				Logger.WarnContext(c.UserContext(), "rate limit store unavailable, failing closed",
					"rule", rule.Name, "error", err.Error())
				return c.Status(fiber.StatusServiceUnavailable).JSON(models.ErrorResponse{
					Error: "Service temporarily unavailable",
					Code:  models.CodeUnavailable,
				})
			}
			return c.Next()
		}

		if !l.enabled {
			return c.Next()
		}
		c.Set("X-RateLimit-Limit", strconv.Itoa(rule.Max))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		if !decision.Allowed {
			seconds := int(decision.RetryAfter.Round(time.Second) / time.Second)
			if seconds < 1 {
				seconds = 1
			}
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(seconds))
			return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorResponse{
				Error: "Too many requests, please try again later.",
				Code:  models.CodeRateLimited,
			})
		}
		return c.Next()
	}
}
