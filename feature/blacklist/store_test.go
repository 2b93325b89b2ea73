package blacklist

import (
	"context"
	"errors"
	"testing"
	"time"

	"content-catalog/core/database"
	"content-catalog/feature/catalog/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	return db
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestStore_Memory(t *testing.T) {
	s := NewStore(nil, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, s.Migrate())
	require.NoError(t, s.Load(ctx))
	assert.False(t, s.Persistent())

	require.NoError(t, s.Add(ctx, "Noisy.esp"))
	require.NoError(t, s.Add(ctx, "noisy.ESP"))
	require.NoError(t, s.Add(ctx, "Another.esm"))

	assert.Equal(t, []string{"Another.esm", "Noisy.esp"}, s.List())
	assert.True(t, s.Contains(&models.OriginFile{Name: "NOISY.esp"}))
	assert.False(t, s.Contains(&models.OriginFile{Name: "Quiet.esp"}))
	assert.False(t, s.Contains(nil))

	assert.Error(t, s.Add(ctx, "readme.txt"))

	removed, err := s.Remove(ctx, "noisy.esp")
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = s.Remove(ctx, "noisy.esp")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestStore_SQLite(t *testing.T) {
	db := setupSQLite(t)
	ctx := context.Background()

	s := NewStore(db, zap.NewNop())
	require.NoError(t, s.Migrate())
	missing, err := s.Verify()
	require.NoError(t, err)
	assert.Empty(t, missing)

	require.NoError(t, s.Add(ctx, "Noisy.esp"))
	require.NoError(t, s.Add(ctx, "NOISY.esp"))
	require.NoError(t, s.Add(ctx, "Other.esl"))

	var count int64
	require.NoError(t, db.Model(&Entry{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	// A fresh store sees the persisted entries.
	fresh := NewStore(db, zap.NewNop())
	require.NoError(t, fresh.Load(ctx))
	assert.Equal(t, []string{"Noisy.esp", "Other.esl"}, fresh.List())
	assert.True(t, fresh.Contains(&models.OriginFile{Name: "other.esl"}))

	removed, err := fresh.Remove(ctx, "OTHER.esl")
	require.NoError(t, err)
	assert.True(t, removed)
	require.NoError(t, s.Load(ctx))
	assert.Equal(t, []string{"Noisy.esp"}, s.List())
}

func TestStore_VerifyMissingTable(t *testing.T) {
	s := NewStore(setupSQLite(t), zap.NewNop())
	missing, err := s.Verify()
	require.NoError(t, err)
	assert.Equal(t, requiredColumns, missing)
}

func TestStore_DatabaseErrors(t *testing.T) {
	db, mock := setupMockDB(t)
	s := NewStore(db, zap.NewNop())
	ctx := context.Background()

	mock.ExpectQuery("SELECT \\* FROM `origin_blacklist`").WillReturnError(errors.New("connection reset"))
	err := s.Load(ctx)
	assert.ErrorContains(t, err, "failed to load blacklist")

	mock.ExpectExec("INSERT INTO `origin_blacklist`").WillReturnError(errors.New("read-only"))
	err = s.Add(ctx, "Noisy.esp")
	assert.ErrorContains(t, err, "failed to add Noisy.esp")
	assert.Empty(t, s.List())

	mock.ExpectExec("DELETE FROM `origin_blacklist`").WillReturnError(errors.New("read-only"))
	_, err = s.Remove(ctx, "Noisy.esp")
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_LoadFromMock(t *testing.T) {
	db, mock := setupMockDB(t)
	rows := sqlmock.NewRows([]string{"id", "name", "plugin_key", "created_at"}).
		AddRow(1, "Noisy.esp", "noisy.esp", time.Now())
	mock.ExpectQuery("SELECT \\* FROM `origin_blacklist` ORDER BY plugin_key").WillReturnRows(rows)

	s := NewStore(db, nil)
	require.NoError(t, s.Load(context.Background()))
	assert.Equal(t, []string{"Noisy.esp"}, s.List())
	assert.NoError(t, mock.ExpectationsWereMet())
}
