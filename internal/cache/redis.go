// Package cache provides Redis caching utilities for the application.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"cafehub/internal/observability"

	"github.com/redis/go-redis/v9"
)

// DialTimeout bounds the startup ping in Connect.
const DialTimeout = 5 * time.Second

var client *redis.Client

// errorCounter counts failed commands by name. A cache miss (redis.Nil) is not a failure.
type errorCounter struct{}

func (errorCounter) DialHook(next redis.DialHook) redis.DialHook { return next }

func (errorCounter) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		err := next(ctx, cmd)
		countFailure(cmd.Name(), err)
		return err
	}
}

func (errorCounter) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := next(ctx, cmds)
		countFailure("pipeline", err)
		return err
	}
}

func countFailure(command string, err error) {
	if err != nil && !errors.Is(err, redis.Nil) {
		observability.RedisErrors.WithLabelValues(command).Inc()
	}
}

// ParseAddr accepts either a redis:// URL or a bare host:port.
func ParseAddr(addr string) (*redis.Options, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, errors.New("redis address is empty")
	}
	if strings.Contains(addr, "://") {
		opts, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		return opts, nil
	}
	return &redis.Options{Addr: addr}, nil
}

// NewClient builds an instrumented client without contacting the server.
func NewClient(opts *redis.Options) *redis.Client {
	c := redis.NewClient(opts)
	c.AddHook(errorCounter{})
	return c
}

// Connect dials and pings Redis. On success the client also backs the
// package-level cache helpers; on failure they stay disabled.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	opts, err := ParseAddr(addr)
	if err != nil {
		client = nil
		return nil, err
	}

	c := NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, DialTimeout)
	defer cancel()
	if err := c.Ping(pingCtx).Err(); err != nil {
		_ = c.Close()
		client = nil
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}

	client = c
	observability.GlobalLogger.Info("Redis connected", slog.String("addr", opts.Addr))
	return c, nil
}

// ConnectOptional is Connect for deployments that can run without Redis:
// failures are logged and a nil client is returned.
func ConnectOptional(ctx context.Context, addr string) *redis.Client {
	c, err := Connect(ctx, addr)
	if err != nil {
		observability.GlobalLogger.Warn("continuing without Redis cache",
			slog.String("error", err.Error()))
		return nil
	}
	return c
}

// GetClient returns the client backing the cache helpers, or nil.
func GetClient() *redis.Client {
	return client
}

// SetClient replaces the package client. Tests use it to point the cache at miniredis.
func SetClient(c *redis.Client) {
	client = c
}
