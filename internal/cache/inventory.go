package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	CafeKeyPrefix = "cafe:%d"
	UserKeyPrefix = "user:%d"
	CitiesKey     = "cities:all"
)

const (
	CafeTTL   = 10 * time.Minute
	UserTTL   = 5 * time.Minute
	CitiesTTL = time.Hour
)

func CafeKey(cafeID uint) string {
	return fmt.Sprintf(CafeKeyPrefix, cafeID)
}

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateCafe(ctx context.Context, cafeID uint) {
	Invalidate(ctx, CafeKey(cafeID))
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}
