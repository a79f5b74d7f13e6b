package postgres

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"github.com/osse101/FreeLunch_Go/internal/domain"
	"github.com/osse101/FreeLunch_Go/internal/logger"
)

// TryLock takes a session-level advisory lock on a dedicated connection.
// The connection stays out of the pool until release is called.
func (s *Store) TryLock(ctx context.Context, name string) (func(context.Context) error, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToAcquireConn, err)
	}

	key := lockKey(name)
	var locked bool
	if err := conn.QueryRow(ctx, SQLTryAdvisoryLock, key).Scan(&locked); err != nil {
		conn.Release()
		return nil, fmt.Errorf("%s %s: %w", ErrMsgFailedToLock, name, err)
	}
	if !locked {
		conn.Release()
		return nil, fmt.Errorf("%w: %s", domain.ErrRunLocked, name)
	}
	logger.FromContext(ctx).Debug(LogMsgLockTaken, "lock", name, "key", key)

	release := func(ctx context.Context) error {
		defer conn.Release()
		var unlocked bool
		if err := conn.QueryRow(ctx, SQLAdvisoryUnlock, key).Scan(&unlocked); err != nil {
			// a broken session drops its locks with it
			_ = conn.Conn().Close(ctx)
			return fmt.Errorf("%s %s: %w", ErrMsgFailedToUnlock, name, err)
		}
		if !unlocked {
			return fmt.Errorf("%s: %s", ErrMsgLockNotHeld, name)
		}
		logger.FromContext(ctx).Debug(LogMsgLockReleased, "lock", name)
		return nil
	}
	return release, nil
}

// lockKey hashes a pipeline name into a positive int64 advisory lock key
func lockKey(name string) int64 {
	h := sha256.Sum256([]byte(LockNamespace + name))
	return int64(binary.BigEndian.Uint64(h[:8]) & HashMaskPositiveInt64)
}
