package ward

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type DoctorRepository interface {
	Create(ctx context.Context, d *Doctor) error
	GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error)
	Update(ctx context.Context, d *Doctor) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Doctor, int, error)
}

type PatientRepository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Patient, int, error)
	ListByParent(ctx context.Context, parentID uuid.UUID) ([]*Patient, error)
}

type SlotRepository interface {
	Upsert(ctx context.Context, s *ShiftSlot) error
	GetByID(ctx context.Context, id uuid.UUID) (*ShiftSlot, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByPatient(ctx context.Context, patientID uuid.UUID, from, to time.Time) ([]*ShiftSlot, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]*ShiftSlot, error)
}

type WindowRepository interface {
	Create(ctx context.Context, w *ShiftWindow) error
	GetByID(ctx context.Context, id uuid.UUID) (*ShiftWindow, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// Activate marks the window active and deactivates every other window.
	Activate(ctx context.Context, id uuid.UUID) error
	ListActiveOverlapping(ctx context.Context, from, to time.Time) ([]*ShiftWindow, error)
	List(ctx context.Context, limit, offset int) ([]*ShiftWindow, int, error)
}

type StatusEventRepository interface {
	Create(ctx context.Context, e *PatientStatusEvent) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByPatient(ctx context.Context, patientID uuid.UUID, statuses ...string) ([]*PatientStatusEvent, error)
}
