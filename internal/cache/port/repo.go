package port

import (
	"context"
	"time"

	"gitlab.apk-group.net/siem/backend/qualys-client/internal/cache/domain"
)

type Repo interface {
	// Get returns domain.ErrEntryNotFound for missing or expired keys.
	Get(ctx context.Context, key string, now time.Time) (*domain.Entry, error)
	Put(ctx context.Context, entry domain.Entry) error
	InvalidateCall(ctx context.Context, call string) (int64, error)
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}
