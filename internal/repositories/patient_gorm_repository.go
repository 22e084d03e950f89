package repositories

import (
	"errors"
	"fmt"

	"github.com/YassineBouzid/phsyckatre-clinick/internal/models"

	"gorm.io/gorm"
)

// GORMPatientRepository is a GORM implementation of PatientRepository.
type GORMPatientRepository struct {
	db *gorm.DB
}

// NewGORMPatientRepository creates a new instance of GORMPatientRepository.
func NewGORMPatientRepository(db *gorm.DB) *GORMPatientRepository {
	return &GORMPatientRepository{
		db: db,
	}
}

// Create inserts a new patient record and returns its identifier.
func (r *GORMPatientRepository) Create(fields models.PatientFields) (uint, error) {
	patient := models.Patient{PatientFields: fields}
	if err := r.db.Create(&patient).Error; err != nil {
		return 0, fmt.Errorf("failed to create patient: %w", err)
	}
	return patient.ID, nil
}

// GetByID retrieves a single patient record by its ID.
func (r *GORMPatientRepository) GetByID(id uint) (*models.Patient, error) {
	var patient models.Patient
	if err := r.db.First(&patient, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("patient with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get patient by ID %d: %w", id, err)
	}
	return &patient, nil
}

// ListSummaries returns the summary columns of every patient in insertion order.
func (r *GORMPatientRepository) ListSummaries() ([]models.PatientSummary, error) {
	summaries := []models.PatientSummary{}
	err := r.db.Model(&models.Patient{}).
		Select("id", "firstname_familyname", "age", "address", "reason_visit").
		Order("id").
		Find(&summaries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return summaries, nil
}

// Update overwrites every descriptive field of an existing patient.
func (r *GORMPatientRepository) Update(id uint, fields models.PatientFields) error {
	// A map keeps empty strings in the statement; struct updates would skip them.
	res := r.db.Model(&models.Patient{}).Where("id = ?", id).Updates(fields.Columns())
	if res.Error != nil {
		return fmt.Errorf("failed to update patient %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("patient with ID %d: %w", id, ErrNotFound)
	}
	return nil
}

// Delete removes a patient by its ID. Deleting a missing record is not an error.
func (r *GORMPatientRepository) Delete(id uint) error {
	if err := r.db.Delete(&models.Patient{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete patient %d: %w", id, err)
	}
	return nil
}
