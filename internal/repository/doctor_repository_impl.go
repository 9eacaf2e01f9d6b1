package repository

import (
	"context"
	"sync"

	"doctor-directory/internal/domain/entity"
	domainRepo "doctor-directory/internal/domain/repository"
)

type doctorRepository struct {
	mu      sync.RWMutex
	loaded  bool
	doctors []entity.Doctor
	byID    map[string]int
}

func NewDoctorRepository() domainRepo.DoctorRepository {
	return &doctorRepository{}
}

func (r *doctorRepository) Status(ctx context.Context) domainRepo.DirectoryStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.loaded {
		return domainRepo.DirectoryReady
	}
	return domainRepo.DirectoryLoading
}

// Store saves the snapshot. Only the first call has an effect; it reports
// whether this call was the one that stored.
func (r *doctorRepository) Store(ctx context.Context, doctors []entity.Doctor) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.loaded {
		return false
	}

	r.doctors = append([]entity.Doctor(nil), doctors...)
	r.byID = make(map[string]int, len(doctors))
	for i, d := range r.doctors {
		if _, dup := r.byID[d.ID]; !dup {
			r.byID[d.ID] = i
		}
	}
	r.loaded = true
	return true
}

// FindAll returns the snapshot in ingestion order. Callers get their own
// slice header but share the records, which are never modified.
func (r *doctorRepository) FindAll(ctx context.Context) ([]entity.Doctor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.doctors[:len(r.doctors):len(r.doctors)], nil
}

func (r *doctorRepository) FindByID(ctx context.Context, id string) (*entity.Doctor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	doctor := r.doctors[i]
	return &doctor, nil
}
