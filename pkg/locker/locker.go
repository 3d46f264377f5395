// Package locker provides distributed locking for coordinating refresh work
// across multiple service instances.
package locker

import (
	"context"
	"time"
)

// DistributedLocker coordinates exclusive work across instances.
// Implementations must be safe for concurrent use.
//
// Typical usage:
//
//	acquired, err := locker.Acquire(ctx, "content:refresh:lock", cooldown)
//	if err != nil {
//	    return err
//	}
//	if !acquired {
//	    // Another instance refreshed recently
//	    return nil
//	}
type DistributedLocker interface {
	// Acquire attempts to take the lock identified by key. Returns true on
	// success, false when another instance holds it. The lock expires on its
	// own after ttl, so a crashed holder cannot wedge the system.
	//
	// The ttl doubles as a cooldown: holding the lock for the full interval
	// rate-limits how often the guarded work runs across the fleet.
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release releases the lock identified by key. Safe to call when this
	// instance does not own the lock (no-op).
	Release(ctx context.Context, key string) error
}
