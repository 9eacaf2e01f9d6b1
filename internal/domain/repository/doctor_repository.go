package repository

import (
	"context"

	"doctor-directory/internal/domain/entity"
)

type DirectoryStatus string

const (
	DirectoryLoading DirectoryStatus = "loading"
	DirectoryReady   DirectoryStatus = "ready"
)

// DoctorRepository holds the directory snapshot. It is written once and read
// many times.
type DoctorRepository interface {
	Status(ctx context.Context) DirectoryStatus
	Store(ctx context.Context, doctors []entity.Doctor) bool
	FindAll(ctx context.Context) ([]entity.Doctor, error)
	FindByID(ctx context.Context, id string) (*entity.Doctor, error)
}
