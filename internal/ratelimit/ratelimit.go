// Package ratelimit throttles sensitive endpoints, mainly login. The
// in-memory limiter is the default; the Redis limiter is used when the
// deployment runs more than one API instance.
package ratelimit

import "context"

type Limiter interface {
	// Allow reports whether the caller identified by key may proceed.
	Allow(ctx context.Context, key string) (bool, error)
}
