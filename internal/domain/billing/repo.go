package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Reader is the read-only collaborator surface the service uses to assemble
// a Snapshot. All methods are point-in-time reads; the engine itself never
// touches it.
type Reader interface {
	GetPatient(ctx context.Context, id uuid.UUID) (*PatientRecord, error)
	ListPatientSlots(ctx context.Context, patientID uuid.UUID, from, to time.Time) ([]SlotRecord, error)
	ListDoctorSlots(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]SlotRecord, error)
	ListActiveWindows(ctx context.Context, from, to time.Time) ([]WindowRecord, error)
	ListStatusEvents(ctx context.Context, patientID uuid.UUID, statuses ...string) ([]StatusEventRecord, error)
	GetDoctors(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]DoctorRecord, error)
	ListCareRanges(ctx context.Context, excludePatientID uuid.UUID) ([]CareRange, error)
}
