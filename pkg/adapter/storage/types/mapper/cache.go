package mapper

import (
	cacheDomain "gitlab.apk-group.net/siem/backend/qualys-client/internal/cache/domain"
	"gitlab.apk-group.net/siem/backend/qualys-client/pkg/adapter/storage/types"
)

// CacheStorage2Domain maps a stored row to a cache entry
func CacheStorage2Domain(row types.ResponseCache) *cacheDomain.Entry {
	return &cacheDomain.Entry{
		Key:       row.CacheKey,
		Call:      row.APICall,
		Body:      row.Body,
		ExpiresAt: row.ExpiresAt,
	}
}

// CacheDomain2Storage maps a cache entry to its row
func CacheDomain2Storage(entry cacheDomain.Entry) types.ResponseCache {
	return types.ResponseCache{
		CacheKey:  entry.Key,
		APICall:   entry.Call,
		Body:      entry.Body,
		ExpiresAt: entry.ExpiresAt,
	}
}
