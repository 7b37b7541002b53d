package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	userKeyPrefix = "user:%d"
	listKeyPrefix = "list:%d"
)

const (
	UserTTL = 5 * time.Minute
	ListTTL = 5 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(userKeyPrefix, userID)
}

func ListKey(listID uint) string {
	return fmt.Sprintf(listKeyPrefix, listID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateList(ctx context.Context, listID uint) {
	Invalidate(ctx, ListKey(listID))
}
