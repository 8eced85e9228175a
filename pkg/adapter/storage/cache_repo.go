package storage

import (
	"context"
	"errors"
	"time"

	cacheDomain "gitlab.apk-group.net/siem/backend/qualys-client/internal/cache/domain"
	cachePort "gitlab.apk-group.net/siem/backend/qualys-client/internal/cache/port"
	"gitlab.apk-group.net/siem/backend/qualys-client/pkg/adapter/storage/types"
	typesMapper "gitlab.apk-group.net/siem/backend/qualys-client/pkg/adapter/storage/types/mapper"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type cacheRepo struct {
	db *gorm.DB
}

func NewCacheRepo(db *gorm.DB) cachePort.Repo {
	return &cacheRepo{db: db}
}

func (r *cacheRepo) Get(ctx context.Context, key string, now time.Time) (*cacheDomain.Entry, error) {
	var row types.ResponseCache
	err := r.db.WithContext(ctx).
		Where("cache_key = ? AND expires_at > ?", key, now).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cacheDomain.ErrEntryNotFound
		}
		return nil, err
	}
	return typesMapper.CacheStorage2Domain(row), nil
}

// Put inserts entry or replaces the row with the same key.
func (r *cacheRepo) Put(ctx context.Context, entry cacheDomain.Entry) error {
	row := typesMapper.CacheDomain2Storage(entry)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cache_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"api_call", "body", "expires_at", "updated_at"}),
		}).
		Create(&row).Error
}

func (r *cacheRepo) InvalidateCall(ctx context.Context, call string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("api_call = ?", call).
		Delete(&types.ResponseCache{})
	return result.RowsAffected, result.Error
}

func (r *cacheRepo) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&types.ResponseCache{})
	return result.RowsAffected, result.Error
}
