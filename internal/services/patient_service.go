package services

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/YassineBouzid/phsyckatre-clinick/internal/models"
	"github.com/YassineBouzid/phsyckatre-clinick/internal/repositories"
)

// PhotoStore copies an image into the asset directory and returns the
// stored filename.
type PhotoStore interface {
	Save(sourcePath string) (string, error)
}

// PatientService handles business logic related to patient records.
type PatientService struct {
	repo   repositories.PatientRepository
	photos PhotoStore
	log    zerolog.Logger
}

// NewPatientService creates a new PatientService.
func NewPatientService(repo repositories.PatientRepository, photos PhotoStore, log zerolog.Logger) *PatientService {
	return &PatientService{
		repo:   repo,
		photos: photos,
		log:    log.With().Str("service", "patients").Logger(),
	}
}

// CreatePatient stores a new record and returns its identifier.
func (s *PatientService) CreatePatient(fields models.PatientFields) (uint, error) {
	id, err := s.repo.Create(fields)
	if err != nil {
		return 0, err
	}
	s.log.Info().Uint("patient_id", id).Msg("patient created")
	return id, nil
}

// GetPatient retrieves a single record by its ID.
func (s *PatientService) GetPatient(id uint) (*models.Patient, error) {
	return s.repo.GetByID(id)
}

// ListPatients returns the summaries of all records in insertion order.
func (s *PatientService) ListPatients() ([]models.PatientSummary, error) {
	return s.repo.ListSummaries()
}

// UpdatePatient overwrites the descriptive fields of an existing record.
func (s *PatientService) UpdatePatient(id uint, fields models.PatientFields) error {
	if err := s.repo.Update(id, fields); err != nil {
		return err
	}
	s.log.Info().Uint("patient_id", id).Msg("patient updated")
	return nil
}

// DeletePatient removes a record. The stored photo is left on disk.
func (s *PatientService) DeletePatient(id uint) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.log.Info().Uint("patient_id", id).Msg("patient deleted")
	return nil
}

// StorePhoto copies the image at sourcePath into the asset directory and
// returns the reference to keep in PatientFields.Photo.
func (s *PatientService) StorePhoto(sourcePath string) (string, error) {
	if s.photos == nil {
		return "", fmt.Errorf("photo storage is not configured")
	}
	name, err := s.photos.Save(sourcePath)
	if err != nil {
		return "", err
	}
	s.log.Debug().Str("source", sourcePath).Str("photo", name).Msg("photo stored")
	return name, nil
}
