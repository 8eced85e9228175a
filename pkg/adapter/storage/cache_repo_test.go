package storage_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormMysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	cacheDomain "gitlab.apk-group.net/siem/backend/qualys-client/internal/cache/domain"
	cachePort "gitlab.apk-group.net/siem/backend/qualys-client/internal/cache/port"
	"gitlab.apk-group.net/siem/backend/qualys-client/pkg/adapter/storage"
)

type CacheRepoTestSuite struct {
	db   *sql.DB
	mock sqlmock.Sqlmock
	repo cachePort.Repo
	ctx  context.Context
}

func setupCacheRepoTest(t *testing.T) *CacheRepoTestSuite {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(gormMysql.New(gormMysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return &CacheRepoTestSuite{
		db:   db,
		mock: mock,
		repo: storage.NewCacheRepo(gormDB),
		ctx:  context.Background(),
	}
}

func (suite *CacheRepoTestSuite) tearDown() {
	suite.db.Close()
}

func TestCacheRepository_Get_Hit(t *testing.T) {
	suite := setupCacheRepoTest(t)
	defer suite.tearDown()

	now := time.Date(2018, 10, 23, 10, 0, 0, 0, time.UTC)
	expires := now.Add(time.Hour)
	rows := sqlmock.NewRows([]string{"id", "cache_key", "api_call", "body", "expires_at", "created_at", "updated_at"}).
		AddRow(1, "abc", "report_template_list.php", []byte("<xml/>"), expires, now, now)

	suite.mock.ExpectQuery("SELECT \\* FROM `qualys_response_cache` WHERE \\(cache_key = \\? AND expires_at > \\?\\)").
		WillReturnRows(rows)

	entry, err := suite.repo.Get(suite.ctx, "abc", now)

	require.NoError(t, err)
	assert.Equal(t, "abc", entry.Key)
	assert.Equal(t, "report_template_list.php", entry.Call)
	assert.Equal(t, []byte("<xml/>"), entry.Body)
	assert.Equal(t, expires, entry.ExpiresAt)
	assert.NoError(t, suite.mock.ExpectationsWereMet())
}

func TestCacheRepository_Get_Miss(t *testing.T) {
	suite := setupCacheRepoTest(t)
	defer suite.tearDown()

	suite.mock.ExpectQuery("SELECT \\* FROM `qualys_response_cache`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	entry, err := suite.repo.Get(suite.ctx, "abc", time.Now())

	assert.Nil(t, entry)
	assert.ErrorIs(t, err, cacheDomain.ErrEntryNotFound)
	assert.NoError(t, suite.mock.ExpectationsWereMet())
}

func TestCacheRepository_Get_DBError(t *testing.T) {
	suite := setupCacheRepoTest(t)
	defer suite.tearDown()

	dbErr := errors.New("connection lost")
	suite.mock.ExpectQuery("SELECT \\* FROM `qualys_response_cache`").WillReturnError(dbErr)

	_, err := suite.repo.Get(suite.ctx, "abc", time.Now())

	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, cacheDomain.ErrEntryNotFound)
}

func TestCacheRepository_Put_Upserts(t *testing.T) {
	suite := setupCacheRepoTest(t)
	defer suite.tearDown()

	suite.mock.ExpectBegin()
	suite.mock.ExpectExec("INSERT INTO `qualys_response_cache` .* ON DUPLICATE KEY UPDATE").
		WillReturnResult(sqlmock.NewResult(1, 1))
	suite.mock.ExpectCommit()

	err := suite.repo.Put(suite.ctx, cacheDomain.Entry{
		Key:       "abc",
		Call:      "map_report_list.php",
		Body:      []byte("<MAP_REPORT_LIST/>"),
		ExpiresAt: time.Now().Add(time.Hour),
	})

	assert.NoError(t, err)
	assert.NoError(t, suite.mock.ExpectationsWereMet())
}

func TestCacheRepository_InvalidateCall(t *testing.T) {
	suite := setupCacheRepoTest(t)
	defer suite.tearDown()

	suite.mock.ExpectBegin()
	suite.mock.ExpectExec("DELETE FROM `qualys_response_cache` WHERE api_call = \\?").
		WithArgs("/api/2.0/fo/scan/").
		WillReturnResult(sqlmock.NewResult(0, 3))
	suite.mock.ExpectCommit()

	n, err := suite.repo.InvalidateCall(suite.ctx, "/api/2.0/fo/scan/")

	assert.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, suite.mock.ExpectationsWereMet())
}

func TestCacheRepository_PurgeExpired(t *testing.T) {
	suite := setupCacheRepoTest(t)
	defer suite.tearDown()

	now := time.Now()
	suite.mock.ExpectBegin()
	suite.mock.ExpectExec("DELETE FROM `qualys_response_cache` WHERE expires_at <= \\?").
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 2))
	suite.mock.ExpectCommit()

	n, err := suite.repo.PurgeExpired(suite.ctx, now)

	assert.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, suite.mock.ExpectationsWereMet())
}
