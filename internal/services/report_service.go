package services

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/YassineBouzid/phsyckatre-clinick/internal/models"
	"github.com/YassineBouzid/phsyckatre-clinick/internal/repositories"
)

// ReportRenderer writes the PDF report of a patient into dir.
type ReportRenderer interface {
	RenderToFile(patient *models.Patient, dir string) (string, error)
}

// ReportService exports patient records as PDF reports.
type ReportService struct {
	repo      repositories.PatientRepository
	renderer  ReportRenderer
	outputDir string
	log       zerolog.Logger
}

// NewReportService creates a new ReportService writing reports into outputDir.
func NewReportService(repo repositories.PatientRepository, renderer ReportRenderer, outputDir string, log zerolog.Logger) *ReportService {
	return &ReportService{
		repo:      repo,
		renderer:  renderer,
		outputDir: outputDir,
		log:       log.With().Str("service", "reports").Logger(),
	}
}

// GenerateReport renders the report of patient id and returns the file path.
func (s *ReportService) GenerateReport(id uint) (string, error) {
	patient, err := s.repo.GetByID(id)
	if err != nil {
		return "", err
	}
	path, err := s.renderer.RenderToFile(patient, s.outputDir)
	if err != nil {
		return "", fmt.Errorf("failed to render report for patient %d: %w", id, err)
	}
	s.log.Info().Uint("patient_id", id).Str("path", path).Msg("report written")
	return path, nil
}
