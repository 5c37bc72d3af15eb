package repository

import (
	"context"

	"trial-bridge/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindByPatient(ctx context.Context, db *gorm.DB, patientEmail string) ([]entity.Appointment, error)
	// Cancel returns affected rows: 0 means it was already cancelled.
	Cancel(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error)
}
