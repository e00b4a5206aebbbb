package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service assembles engine snapshots from the reader and runs the optimizer.
// It holds no state between calls; holiday tables are injected once at
// construction from configuration.
type Service struct {
	reader             Reader
	statHolidays       map[string]bool
	designatedHolidays map[string]bool
}

func NewService(reader Reader, statHolidays, designatedHolidays map[string]bool) *Service {
	return &Service{
		reader:             reader,
		statHolidays:       statHolidays,
		designatedHolidays: designatedHolidays,
	}
}

// Recommendations loads a consistent snapshot for the patient and returns
// the optimized billing list. Precondition failures inside the engine come
// back as an empty list, not an error.
func (s *Service) Recommendations(ctx context.Context, patientID uuid.UUID) ([]Entry, error) {
	snapshot, err := s.LoadSnapshot(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return BuildOptimizedBillings(snapshot), nil
}

// LoadSnapshot gathers every row the engine needs in one pass. The doctor
// map is built once from all referenced ids so slot processing never issues
// point lookups.
func (s *Service) LoadSnapshot(ctx context.Context, patientID uuid.UUID) (*Snapshot, error) {
	patient, err := s.reader.GetPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("load patient: %w", err)
	}

	events, err := s.reader.ListStatusEvents(ctx, patientID, statusTriage, statusInduction, statusMonitoring)
	if err != nil {
		return nil, fmt.Errorf("load status events: %w", err)
	}

	from, to := slotRange(patient, events)
	slots, err := s.reader.ListPatientSlots(ctx, patientID, from, to)
	if err != nil {
		return nil, fmt.Errorf("load slots: %w", err)
	}

	snapshot := &Snapshot{
		Patient:            *patient,
		Slots:              slots,
		Events:             events,
		StatHolidays:       s.statHolidays,
		DesignatedHolidays: s.designatedHolidays,
	}

	if patient.AdmittedAt != nil && patient.DeliveredAt != nil && patient.AdmittedAt.Before(*patient.DeliveredAt) {
		windows, err := s.reader.ListActiveWindows(ctx, *patient.AdmittedAt, *patient.DeliveredAt)
		if err != nil {
			return nil, fmt.Errorf("load windows: %w", err)
		}
		snapshot.Windows = windows

		for _, w := range windows {
			doctorSlots, err := s.reader.ListDoctorSlots(ctx, w.DoctorID, w.StartDatetime, w.EndDatetime)
			if err != nil {
				return nil, fmt.Errorf("load doctor slots: %w", err)
			}
			snapshot.AllSlots = append(snapshot.AllSlots, doctorSlots...)
		}

		others, err := s.reader.ListCareRanges(ctx, patientID)
		if err != nil {
			return nil, fmt.Errorf("load care ranges: %w", err)
		}
		snapshot.Others = others
	}

	doctors, err := s.reader.GetDoctors(ctx, referencedDoctorIDs(snapshot))
	if err != nil {
		return nil, fmt.Errorf("load doctors: %w", err)
	}
	snapshot.Doctors = doctors
	return snapshot, nil
}

// slotRange is the query span for the patient's own slots: from the episode
// start to the triage cutoff, padded a day on each side so late triage work
// and pre-admission slots are not clipped.
func slotRange(p *PatientRecord, events []StatusEventRecord) (time.Time, time.Time) {
	var from, to time.Time
	switch {
	case p.StartDatetime != nil:
		from = *p.StartDatetime
	case p.AdmittedAt != nil:
		from = *p.AdmittedAt
	default:
		from = time.Time{}
	}
	if p.DeliveredAt != nil {
		to = *p.DeliveredAt
	} else {
		to = from
	}
	for _, e := range events {
		if e.Status == statusTriage && e.OccurredAt.After(to) {
			to = e.OccurredAt
		}
	}
	return from.Add(-24 * time.Hour), to.Add(24 * time.Hour)
}

func referencedDoctorIDs(s *Snapshot) []uuid.UUID {
	seen := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	add := func(id uuid.UUID) {
		if id != uuid.Nil && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, slot := range s.Slots {
		add(slot.DoctorID)
	}
	for _, slot := range s.AllSlots {
		add(slot.DoctorID)
	}
	for _, w := range s.Windows {
		add(w.DoctorID)
	}
	for _, e := range s.Events {
		if e.DoctorID != nil {
			add(*e.DoctorID)
		}
	}
	return ids
}
