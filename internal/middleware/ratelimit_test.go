package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"cafehub/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

var testRule = Rule{Name: "login", Max: 2, Window: time.Minute}

func TestRateLimiter_DisabledOutsideProduction(t *testing.T) {
	for _, env := range []string{"", "test", "development"} {
		t.Run("env="+env, func(t *testing.T) {
			l := NewRateLimiter(nil, env)
			assert.False(t, l.Enabled())

			d, err := l.Allow(context.Background(), testRule, "ip:1")
			require.NoError(t, err)
			assert.True(t, d.Allowed)
			assert.Equal(t, testRule.Max, d.Remaining)
		})
	}
}

func TestRateLimiter_NilRedis(t *testing.T) {
	l := NewRateLimiter(nil, "production")

	_, err := l.Allow(context.Background(), testRule, "ip:1")
	assert.ErrorIs(t, err, errNoLimitStore)
}

func TestRateLimiter_FixedWindow(t *testing.T) {
	mr, rdb := newMiniRedis(t)
	l := NewRateLimiter(rdb, "production")
	ctx := context.Background()

	for i := 0; i < testRule.Max; i++ {
		d, err := l.Allow(ctx, testRule, "ip:1")
		require.NoError(t, err)
		assert.True(t, d.Allowed, "request %d should be allowed", i+1)
		assert.Equal(t, testRule.Max-i-1, d.Remaining)
	}

	d, err := l.Allow(ctx, testRule, "ip:1")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Greater(t, d.RetryAfter, time.Duration(0))
	assert.LessOrEqual(t, d.RetryAfter, testRule.Window)

	// other subjects have their own budget
	d, err = l.Allow(ctx, testRule, "ip:2")
	require.NoError(t, err)
	assert.True(t, d.Allowed)

	mr.FastForward(time.Minute + time.Second)
	d, err = l.Allow(ctx, testRule, "ip:1")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestRateLimiter_Handler(t *testing.T) {
	_, rdb := newMiniRedis(t)
	l := NewRateLimiter(rdb, "production")

	app := fiber.New()
	app.Post("/login", l.Handler(Rule{Name: "login", Max: 1, Window: time.Minute}), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "1", resp.Header.Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", resp.Header.Get("X-RateLimit-Remaining"))

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/login", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))

	var body models.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, models.CodeRateLimited, body.Code)
}

func TestRateLimiter_HandlerKeysBySignedInUser(t *testing.T) {
	_, rdb := newMiniRedis(t)
	l := NewRateLimiter(rdb, "production")
	rule := Rule{Name: "like", Max: 1, Window: time.Minute}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if uid, err := strconv.ParseUint(c.Get("X-User"), 10, 64); err == nil {
			c.Locals("userID", uint(uid))
		}
		return c.Next()
	})
	app.Post("/like", l.Handler(rule), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	for _, user := range []string{"1", "2"} {
		req := httptest.NewRequest(http.MethodPost, "/like", nil)
		req.Header.Set("X-User", user)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode, "user %s", user)
	}
}

func TestRateLimiter_FailPolicy(t *testing.T) {
	l := NewRateLimiter(nil, "production")

	app := fiber.New()
	app.Post("/open", l.Handler(Rule{Name: "open", Max: 1, Window: time.Minute}), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Post("/closed", l.Handler(Rule{Name: "closed", Max: 1, Window: time.Minute, Policy: FailClosed}), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/open", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/closed", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
