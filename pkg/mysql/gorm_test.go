package mysql

import (
	"testing"

	sqlDriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBConnOptions_DSN(t *testing.T) {
	opts := DBConnOptions{
		Host:     "db.local",
		Port:     3306,
		Username: "qualys",
		Password: "p@ss:word",
		Database: "qualys_cache",
	}

	dsn := opts.DSN()
	parsed, err := sqlDriver.ParseDSN(dsn)
	require.NoError(t, err)

	assert.Equal(t, "qualys", parsed.User)
	assert.Equal(t, "p@ss:word", parsed.Passwd)
	assert.Equal(t, "tcp", parsed.Net)
	assert.Equal(t, "db.local:3306", parsed.Addr)
	assert.Equal(t, "qualys_cache", parsed.DBName)
	assert.True(t, parsed.ParseTime)
	assert.Contains(t, dsn, "charset=utf8mb4")
}
