package cache

import (
	"context"
	"log/slog"
)

// SafeInvalidatePattern invalidates a pattern and only logs failures
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// SafeDelete deletes keys and only logs failures
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "Failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

// InvalidateUser drops the cached user row and the public profile built from it
func InvalidateUser(ctx context.Context, cm *CacheManager, userID, email string) {
	SafeDelete(ctx, cm.User, "id:"+userID)
	if email != "" {
		SafeDelete(ctx, cm.User, "email:"+email)
	}
	InvalidateProfile(ctx, cm, userID)
}

// InvalidateProfile drops the cached public profile of a student
func InvalidateProfile(ctx context.Context, cm *CacheManager, studentID string) {
	SafeDelete(ctx, cm.Profile, studentID)
	SafeInvalidatePattern(ctx, cm.Profile, "projects:*")
}
