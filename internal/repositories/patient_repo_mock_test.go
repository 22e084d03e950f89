package repositories_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YassineBouzid/phsyckatre-clinick/internal/models"
	"github.com/YassineBouzid/phsyckatre-clinick/internal/repositories"
)

func TestMemoryPatientRepository(t *testing.T) {
	repo := repositories.NewMemoryPatientRepository()

	a, err := repo.Create(models.PatientFields{FullName: "a"})
	require.NoError(t, err)
	b, err := repo.Create(models.PatientFields{FullName: "b"})
	require.NoError(t, err)

	list, err := repo.ListSummaries()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, a, list[0].ID)
	assert.Equal(t, b, list[1].ID)

	require.NoError(t, repo.Update(a, models.PatientFields{FullName: "a2"}))
	got, err := repo.GetByID(a)
	require.NoError(t, err)
	assert.Equal(t, "a2", got.FullName)

	assert.ErrorIs(t, repo.Update(99, models.PatientFields{}), repositories.ErrNotFound)

	require.NoError(t, repo.Delete(b))
	require.NoError(t, repo.Delete(b))
	_, err = repo.GetByID(b)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	c, err := repo.Create(models.PatientFields{FullName: "c"})
	require.NoError(t, err)
	assert.Greater(t, c, b)
}
