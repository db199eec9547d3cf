package redis

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	pkgerrors "github.com/angelmondragon/lotlister-backend/pkg/errors"
)

// LotLocker serializes bulk mutations (regroup, bulk edit) per lot.
type LotLocker interface {
	AcquireLotLock(ctx context.Context, lotID string, ttl time.Duration) (release func(context.Context) error, err error)
}

// AcquireLotLock takes a short SetNX lease on the lot. The returned release
// func deletes the lease only if this caller still owns it. A held lock
// surfaces as CodeLocked so the request layer can ask the client to retry.
func (c *Client) AcquireLotLock(ctx context.Context, lotID string, ttl time.Duration) (func(context.Context) error, error) {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	key := c.LotLockKey(lotID)
	token := uuid.NewString()

	ok, err := c.SetNX(ctx, key, token, ttl)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "acquire lot lock")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeLocked, "lot is being modified by another request")
	}

	release := func(ctx context.Context) error {
		current, err := c.Get(ctx, key)
		if errors.Is(err, redis.Nil) {
			// Lease already expired.
			return nil
		}
		if err != nil {
			return err
		}
		if current != token {
			// Lease expired and someone else holds it now.
			return nil
		}
		return c.Del(ctx, key)
	}
	return release, nil
}
