package types

import "time"

type ResponseCache struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	CacheKey  string    `gorm:"column:cache_key;type:char(64);not null;uniqueIndex"`
	APICall   string    `gorm:"column:api_call;size:255;not null;index"`
	Body      []byte    `gorm:"column:body;type:longblob;not null"`
	ExpiresAt time.Time `gorm:"column:expires_at;type:datetime;not null;index"`
	CreatedAt time.Time `gorm:"column:created_at;type:datetime"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:datetime"`
}

func (ResponseCache) TableName() string {
	return "qualys_response_cache"
}
