package mysql

import (
	"fmt"
	"time"

	sqlDriver "github.com/go-sql-driver/mysql"
	"gitlab.apk-group.net/siem/backend/qualys-client/pkg/adapter/storage/types"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DBConnOptions struct {
	Host     string
	Port     uint
	Username string
	Password string
	Database string
}

// DSN renders the options for the go-sql-driver connector.
func (o DBConnOptions) DSN() string {
	cfg := sqlDriver.NewConfig()
	cfg.User = o.Username
	cfg.Passwd = o.Password
	cfg.Net = "tcp"
	cfg.Addr = fmt.Sprintf("%s:%d", o.Host, o.Port)
	cfg.DBName = o.Database
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg.FormatDSN()
}

func NewMysqlConnection(cfg DBConnOptions) (*gorm.DB, error) {
	return gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Discard,
	})
}

func GormMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(&types.ResponseCache{}); err != nil {
		return fmt.Errorf("failed to migrate models: %w", err)
	}
	return nil
}
