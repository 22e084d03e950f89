package repositories_test

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/YassineBouzid/phsyckatre-clinick/internal/database"
)

var errDB = errors.New("disk I/O error")

// setupTestDB opens a private in-memory database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenDialector(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

// setupMockDB returns a gorm handle backed by sqlmock. The reported sqlite
// version predates RETURNING so inserts go through Exec.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	mock.ExpectQuery("select sqlite_version").
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow("3.30.0"))

	gormDB, err := gorm.Open(
		sqlite.Dialector{Conn: mockDB},
		&gorm.Config{
			Logger:                 logger.Default.LogMode(logger.Silent),
			SkipDefaultTransaction: true,
		},
	)
	require.NoError(t, err)
	return gormDB, mock
}
