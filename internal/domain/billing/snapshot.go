package billing

import (
	"time"

	"github.com/google/uuid"
)

// Snapshot is the engine's entire view of the world: an immutable copy of the
// rows relevant to one patient, assembled by the service layer. The engine
// performs no reads of its own.
type Snapshot struct {
	Patient PatientRecord

	// Slots are the patient's own shift slots within the queried range.
	Slots []SlotRecord

	// AllSlots are every slot belonging to the overlapping windows' doctors
	// inside their window ranges, patient-agnostic. Needed to decide whether
	// a doctor's first attended slot of a window belongs to this patient.
	AllSlots []SlotRecord

	// Windows are the active shift windows overlapping admitted to delivered.
	Windows []WindowRecord

	Events  []StatusEventRecord
	Doctors map[uuid.UUID]DoctorRecord

	// Others are the admitted/delivered ranges of every other patient,
	// used for ghost-slot contention.
	Others []CareRange

	StatHolidays       map[string]bool
	DesignatedHolidays map[string]bool
}

type PatientRecord struct {
	ID                uuid.UUID
	PatientType       string
	StartDatetime     *time.Time
	AdmittedAt        *time.Time
	DeliveredAt       *time.Time
	SecondTriageAt    *time.Time
	SecondTriageAfter *string
	BabyResuscitation bool
	ParentPatientID   *uuid.UUID
}

type DoctorRecord struct {
	ID           uuid.UUID
	Name         string
	Obstetrician bool
}

// SlotRecord flattens a shift slot for the engine. Action is empty for plain
// roster placeholders.
type SlotRecord struct {
	DoctorID  uuid.UUID
	PatientID *uuid.UUID
	StartTime time.Time
	Action    string

	DeliveryCode     string
	DeliveryTime     *time.Time
	Hemorrhage       bool
	Vacuum           bool
	Laceration       bool
	ShoulderDystocia bool
	ManualPlacenta   bool
	BMIProgram       bool

	NonStressTest bool
	SpeculumExam  bool

	SupportiveCare bool
}

type WindowRecord struct {
	DoctorID      uuid.UUID
	StartDatetime time.Time
	EndDatetime   time.Time
}

type StatusEventRecord struct {
	Status        string
	OccurredAt    time.Time
	DoctorID      *uuid.UUID
	NonStressTest bool
}

// CareRange is another patient's admitted-to-delivered interval. OBDelivery
// marks OB/VBAC-coded deliveries, which are excluded from contention.
type CareRange struct {
	PatientID   uuid.UUID
	AdmittedAt  time.Time
	DeliveredAt time.Time
	OBDelivery  bool
}

// Slot actions and event statuses, mirrored from the ward tables.
const (
	actionAttended           = "attended"
	actionDelivery           = "delivery"
	actionTriageVisit        = "triage_visit"
	actionTriageReassessment = "triage_reassessment"
	actionRounds             = "rounds"
	actionTongueTieClip      = "tongue_tie_clip"

	statusTriage     = "Triage"
	statusInduction  = "Induction"
	statusMonitoring = "Continuous Monitoring"

	patientTypeBaby = "baby"
)

func (s *Snapshot) doctorRef(id uuid.UUID) *DoctorRef {
	d, ok := s.Doctors[id]
	if !ok {
		return &DoctorRef{ID: id}
	}
	return &DoctorRef{ID: d.ID, Name: d.Name}
}

func (s *Snapshot) doctorRefOptional(id *uuid.UUID) *DoctorRef {
	if id == nil {
		return nil
	}
	return s.doctorRef(*id)
}

func (s *Snapshot) doctorIsObstetrician(id uuid.UUID) bool {
	d, ok := s.Doctors[id]
	return ok && d.Obstetrician
}

func (s *SlotRecord) belongsTo(patientID uuid.UUID) bool {
	return s.PatientID != nil && *s.PatientID == patientID
}

func (s *SlotRecord) isTriageAction() bool {
	return s.Action == actionTriageVisit || s.Action == actionTriageReassessment
}
