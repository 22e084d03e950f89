package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/YassineBouzid/phsyckatre-clinick/internal/models"
)

// MemoryPatientRepository is an in-memory implementation of PatientRepository.
// Like the sqlite store it never hands out an identifier twice.
type MemoryPatientRepository struct {
	patients map[uint]models.Patient
	lastID   uint
	mu       sync.RWMutex
}

// NewMemoryPatientRepository creates a new instance of MemoryPatientRepository.
func NewMemoryPatientRepository() *MemoryPatientRepository {
	return &MemoryPatientRepository{
		patients: make(map[uint]models.Patient),
	}
}

// Create adds a new patient.
func (r *MemoryPatientRepository) Create(fields models.PatientFields) (uint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	now := time.Now()
	r.patients[r.lastID] = models.Patient{
		ID:            r.lastID,
		PatientFields: fields,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return r.lastID, nil
}

// GetByID returns a patient by its ID.
func (r *MemoryPatientRepository) GetByID(id uint) (*models.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	patient, ok := r.patients[id]
	if !ok {
		return nil, fmt.Errorf("patient with ID %d: %w", id, ErrNotFound)
	}
	return &patient, nil
}

// ListSummaries returns all patients ordered by ID.
func (r *MemoryPatientRepository) ListSummaries() ([]models.PatientSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	summaries := make([]models.PatientSummary, 0, len(r.patients))
	for _, p := range r.patients {
		summaries = append(summaries, p.Summary())
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].ID < summaries[j].ID })
	return summaries, nil
}

// Update modifies an existing patient.
func (r *MemoryPatientRepository) Update(id uint, fields models.PatientFields) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	patient, ok := r.patients[id]
	if !ok {
		return fmt.Errorf("patient with ID %d: %w", id, ErrNotFound)
	}
	patient.PatientFields = fields
	patient.UpdatedAt = time.Now()
	r.patients[id] = patient
	return nil
}

// Delete removes a patient by its ID.
func (r *MemoryPatientRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.patients, id)
	return nil
}
