package ward

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Service wraps the ward repositories with validation. Repositories are
// deliberately thin; anything that must hold across tables lives here.
type Service struct {
	doctors  DoctorRepository
	patients PatientRepository
	slots    SlotRepository
	windows  WindowRepository
	events   StatusEventRepository
}

func NewService(doctors DoctorRepository, patients PatientRepository, slots SlotRepository, windows WindowRepository, events StatusEventRepository) *Service {
	return &Service{
		doctors:  doctors,
		patients: patients,
		slots:    slots,
		windows:  windows,
		events:   events,
	}
}

// ---- Doctors ----

func (s *Service) CreateDoctor(ctx context.Context, d *Doctor) error {
	if d.Name == "" {
		return fmt.Errorf("doctor name is required")
	}
	return s.doctors.Create(ctx, d)
}

func (s *Service) GetDoctor(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return s.doctors.GetByID(ctx, id)
}

func (s *Service) UpdateDoctor(ctx context.Context, d *Doctor) error {
	if d.ID == uuid.Nil {
		return fmt.Errorf("doctor id is required")
	}
	if d.Name == "" {
		return fmt.Errorf("doctor name is required")
	}
	return s.doctors.Update(ctx, d)
}

func (s *Service) DeleteDoctor(ctx context.Context, id uuid.UUID) error {
	return s.doctors.Delete(ctx, id)
}

func (s *Service) ListDoctors(ctx context.Context, limit, offset int) ([]*Doctor, int, error) {
	return s.doctors.List(ctx, limit, offset)
}

// ---- Patients ----

func (s *Service) CreatePatient(ctx context.Context, p *Patient) error {
	if err := validatePatient(p); err != nil {
		return err
	}
	return s.patients.Create(ctx, p)
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *Service) UpdatePatient(ctx context.Context, p *Patient) error {
	if p.ID == uuid.Nil {
		return fmt.Errorf("patient id is required")
	}
	if err := validatePatient(p); err != nil {
		return err
	}
	return s.patients.Update(ctx, p)
}

func (s *Service) DeletePatient(ctx context.Context, id uuid.UUID) error {
	return s.patients.Delete(ctx, id)
}

func (s *Service) ListPatients(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.patients.List(ctx, limit, offset)
}

func (s *Service) ListBabies(ctx context.Context, parentID uuid.UUID) ([]*Patient, error) {
	return s.patients.ListByParent(ctx, parentID)
}

func validatePatient(p *Patient) error {
	if !validPatientTypes[p.PatientType] {
		return fmt.Errorf("invalid patient type %q", p.PatientType)
	}
	if p.PatientType == PatientTypeBaby && p.ParentPatientID == nil {
		return fmt.Errorf("baby patient requires parent_patient_id")
	}
	if p.CareAdmittedAt != nil && p.CareDeliveredAt != nil && !p.CareAdmittedAt.Before(*p.CareDeliveredAt) {
		return fmt.Errorf("care_admitted_at must precede care_delivered_at")
	}
	if p.CareDeliveredAt != nil && p.CareDischargedAt != nil && p.CareDischargedAt.Before(*p.CareDeliveredAt) {
		return fmt.Errorf("care_discharged_at must not precede care_delivered_at")
	}
	return nil
}

// ---- Slots ----

func (s *Service) UpsertSlot(ctx context.Context, slot *ShiftSlot) error {
	if slot.DoctorID == uuid.Nil {
		return fmt.Errorf("slot doctor_id is required")
	}
	if m := slot.StartTime.Minute(); m%15 != 0 || slot.StartTime.Second() != 0 || slot.StartTime.Nanosecond() != 0 {
		return fmt.Errorf("slot start_time must fall on a quarter-hour boundary")
	}
	if slot.Action != nil && !validActions[*slot.Action] {
		return fmt.Errorf("invalid slot action %q", *slot.Action)
	}
	if slot.Action != nil && *slot.Action == ActionDelivery && slot.PatientID == nil {
		return fmt.Errorf("delivery slot requires a patient")
	}
	return s.slots.Upsert(ctx, slot)
}

func (s *Service) GetSlot(ctx context.Context, id uuid.UUID) (*ShiftSlot, error) {
	return s.slots.GetByID(ctx, id)
}

func (s *Service) DeleteSlot(ctx context.Context, id uuid.UUID) error {
	return s.slots.Delete(ctx, id)
}

// ---- Windows ----

func (s *Service) CreateWindow(ctx context.Context, w *ShiftWindow) error {
	if w.DoctorID == uuid.Nil {
		return fmt.Errorf("window doctor_id is required")
	}
	if !w.EndDatetime.After(w.StartDatetime) {
		return fmt.Errorf("window end_datetime must be after start_datetime")
	}
	return s.windows.Create(ctx, w)
}

func (s *Service) GetWindow(ctx context.Context, id uuid.UUID) (*ShiftWindow, error) {
	return s.windows.GetByID(ctx, id)
}

func (s *Service) DeleteWindow(ctx context.Context, id uuid.UUID) error {
	return s.windows.Delete(ctx, id)
}

func (s *Service) ActivateWindow(ctx context.Context, id uuid.UUID) error {
	if _, err := s.windows.GetByID(ctx, id); err != nil {
		return fmt.Errorf("window not found: %w", err)
	}
	return s.windows.Activate(ctx, id)
}

func (s *Service) ListWindows(ctx context.Context, limit, offset int) ([]*ShiftWindow, int, error) {
	return s.windows.List(ctx, limit, offset)
}

// ---- Status events ----

func (s *Service) RecordStatusEvent(ctx context.Context, e *PatientStatusEvent) error {
	if e.PatientID == uuid.Nil {
		return fmt.Errorf("event patient_id is required")
	}
	if !validStatuses[e.Status] {
		return fmt.Errorf("invalid status %q", e.Status)
	}
	if e.OccurredAt.IsZero() {
		return fmt.Errorf("event occurred_at is required")
	}
	if e.AfterStatus != nil && !validStatuses[*e.AfterStatus] {
		return fmt.Errorf("invalid after_status %q", *e.AfterStatus)
	}
	return s.events.Create(ctx, e)
}

func (s *Service) DeleteStatusEvent(ctx context.Context, id uuid.UUID) error {
	return s.events.Delete(ctx, id)
}

func (s *Service) ListStatusEvents(ctx context.Context, patientID uuid.UUID, statuses ...string) ([]*PatientStatusEvent, error) {
	return s.events.ListByPatient(ctx, patientID, statuses...)
}
