package repositories

import (
	"errors"

	"github.com/YassineBouzid/phsyckatre-clinick/internal/models"
)

// ErrNotFound is returned when no row matches the requested key.
var ErrNotFound = errors.New("record not found")

// PatientRepository defines the interface for patient record access.
type PatientRepository interface {
	Create(fields models.PatientFields) (uint, error)
	GetByID(id uint) (*models.Patient, error)
	ListSummaries() ([]models.PatientSummary, error)
	Update(id uint, fields models.PatientFields) error
	Delete(id uint) error
}
