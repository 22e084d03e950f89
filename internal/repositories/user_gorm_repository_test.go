package repositories_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YassineBouzid/phsyckatre-clinick/internal/models"
	"github.com/YassineBouzid/phsyckatre-clinick/internal/repositories"
)

func TestGORMUserRepository(t *testing.T) {
	repo := repositories.NewGORMUserRepository(setupTestDB(t))

	n, err := repo.Count()
	require.NoError(t, err)
	assert.Zero(t, n)

	user := &models.User{Username: "admin", PasswordHash: "hash"}
	require.NoError(t, repo.Create(user))
	assert.NotZero(t, user.ID)

	got, err := repo.GetByUsername("admin")
	require.NoError(t, err)
	assert.Equal(t, "hash", got.PasswordHash)

	_, err = repo.GetByUsername("Admin")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	err = repo.Create(&models.User{Username: "admin", PasswordHash: "other"})
	assert.Error(t, err, "username is unique")

	n, err = repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestGORMUserRepository_StoreErrors(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repositories.NewGORMUserRepository(db)

	mock.ExpectQuery("SELECT count").WillReturnError(errDB)
	_, err := repo.Count()
	assert.ErrorIs(t, err, errDB)

	mock.ExpectQuery("SELECT \\* FROM `users`").WillReturnError(errDB)
	_, err = repo.GetByUsername("admin")
	assert.ErrorIs(t, err, errDB)
	assert.NotErrorIs(t, err, repositories.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
