package app

import (
	"context"

	"gitlab.apk-group.net/siem/backend/qualys-client/config"
	"gitlab.apk-group.net/siem/backend/qualys-client/internal/connector"
	connectorPort "gitlab.apk-group.net/siem/backend/qualys-client/internal/connector/port"
	"gitlab.apk-group.net/siem/backend/qualys-client/internal/qualys"
	qualysPort "gitlab.apk-group.net/siem/backend/qualys-client/internal/qualys/port"
	"gitlab.apk-group.net/siem/backend/qualys-client/pkg/adapter/storage"
	"gitlab.apk-group.net/siem/backend/qualys-client/pkg/logger"
	"gitlab.apk-group.net/siem/backend/qualys-client/pkg/mysql"
	"gorm.io/gorm"
)

type app struct {
	db            *gorm.DB
	cfg           config.Config
	conn          connectorPort.Connector
	cache         *connector.CachingConnector
	qualysService qualysPort.Service
}

func (a *app) QualysService(ctx context.Context) qualysPort.Service {
	return a.qualysService
}

func (a *app) Config() config.Config {
	return a.cfg
}

func (a *app) DB() *gorm.DB {
	return a.db
}

// PurgeCache drops expired rows of the persistent response cache.
func (a *app) PurgeCache(ctx context.Context) (int64, error) {
	if a.cache == nil {
		return 0, nil
	}
	return a.cache.PurgeExpired(ctx)
}

func (a *app) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (a *app) setDB() error {
	db, err := mysql.NewMysqlConnection(mysql.DBConnOptions{
		Host:     a.cfg.DB.Host,
		Port:     a.cfg.DB.Port,
		Username: a.cfg.DB.Username,
		Password: a.cfg.DB.Password,
		Database: a.cfg.DB.Database,
	})
	if err != nil {
		return err
	}
	if err := mysql.GormMigrations(db); err != nil {
		return err
	}
	a.db = db
	return nil
}

func (a *app) setConnector() error {
	httpConn, err := connector.NewHTTPConnector(a.cfg.Qualys)
	if err != nil {
		return err
	}
	a.conn = httpConn

	if !a.cfg.Cache.Enabled {
		return nil
	}

	var opts []connector.CacheOption
	if a.cfg.Cache.Persistent {
		if err := a.setDB(); err != nil {
			return err
		}
		opts = append(opts, connector.WithCacheRepo(storage.NewCacheRepo(a.db)))
	}

	a.cache, err = connector.NewCachingConnector(httpConn, a.cfg.Cache, opts...)
	if err != nil {
		return err
	}
	a.conn = a.cache
	return nil
}

func NewApp(cfg config.Config) (AppContainer, error) {
	a := &app{
		cfg: cfg,
	}
	if err := a.setConnector(); err != nil {
		return nil, err
	}
	a.qualysService = qualys.NewQualysService(a.conn)

	logger.InfoWithFields("Qualys client initialized", map[string]interface{}{
		"host":             cfg.Qualys.Host,
		"cache_enabled":    cfg.Cache.Enabled,
		"cache_persistent": cfg.Cache.Enabled && cfg.Cache.Persistent,
	})
	return a, nil
}

func NewMustApp(cfg config.Config) AppContainer {
	a, err := NewApp(cfg)
	if err != nil {
		panic(err)
	}
	return a
}
