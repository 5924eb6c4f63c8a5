package service

import (
	"context"
	"time"
)

// storeContext bounds a store round-trip. A non-positive timeout leaves ctx unbounded.
func storeContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
