package app

import (
	"context"

	"gitlab.apk-group.net/siem/backend/qualys-client/config"
	qualysPort "gitlab.apk-group.net/siem/backend/qualys-client/internal/qualys/port"
	"gorm.io/gorm"
)

type AppContainer interface {
	QualysService(ctx context.Context) qualysPort.Service
	Config() config.Config
	// DB is nil unless the persistent response cache is enabled.
	DB() *gorm.DB
	PurgeCache(ctx context.Context) (int64, error)
	Close() error
}
