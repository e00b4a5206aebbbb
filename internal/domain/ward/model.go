package ward

import (
	"time"

	"github.com/google/uuid"
)

// Patient types.
const (
	PatientTypeMother = "mother"
	PatientTypeBaby   = "baby"
)

// Shift slot actions. A slot with a NULL action is a plain roster placeholder.
const (
	ActionAttended           = "attended"
	ActionDelivery           = "delivery"
	ActionTriageVisit        = "triage_visit"
	ActionTriageReassessment = "triage_reassessment"
	ActionRounds             = "rounds"
	ActionTongueTieClip      = "tongue_tie_clip"
)

// Patient status event kinds.
const (
	StatusTriage               = "Triage"
	StatusAdmitted             = "Admitted"
	StatusDelivered            = "Delivered"
	StatusDischarged           = "Discharged"
	StatusInduction            = "Induction"
	StatusContinuousMonitoring = "Continuous Monitoring"
)

// Doctor maps to the doctor table.
type Doctor struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Obstetrician bool      `db:"obstetrician" json:"obstetrician"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Patient maps to the patient table. The care_* timestamps are the episode
// lifecycle: triage start, admission, delivery, discharge.
type Patient struct {
	ID                uuid.UUID  `db:"id" json:"id"`
	PatientType       string     `db:"patient_type" json:"patient_type"`
	CareStatus        *string    `db:"care_status" json:"care_status,omitempty"`
	StartDatetime     *time.Time `db:"start_datetime" json:"start_datetime,omitempty"`
	CareAdmittedAt    *time.Time `db:"care_admitted_at" json:"care_admitted_at,omitempty"`
	CareDeliveredAt   *time.Time `db:"care_delivered_at" json:"care_delivered_at,omitempty"`
	CareDischargedAt  *time.Time `db:"care_discharged_at" json:"care_discharged_at,omitempty"`
	SecondTriageAt    *time.Time `db:"second_triage_at" json:"second_triage_at,omitempty"`
	SecondTriageAfter *string    `db:"second_triage_after" json:"second_triage_after,omitempty"`
	BabyResuscitation *bool      `db:"baby_resuscitation" json:"baby_resuscitation,omitempty"`
	ParentPatientID   *uuid.UUID `db:"parent_patient_id" json:"parent_patient_id,omitempty"`
	CreatedAt         time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at" json:"updated_at"`
}

// ShiftSlot maps to the shift_slot table. A slot is owned by exactly one
// (doctor, start_time) pair; start_time is always a quarter-hour boundary.
type ShiftSlot struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	DoctorID  uuid.UUID  `db:"doctor_id" json:"doctor_id"`
	PatientID *uuid.UUID `db:"patient_id" json:"patient_id,omitempty"`
	StartTime time.Time  `db:"start_time" json:"start_time"`
	Action    *string    `db:"action" json:"action,omitempty"`

	// Delivery-action fields.
	DeliveryCode             *string    `db:"delivery_code" json:"delivery_code,omitempty"`
	DeliveryTime             *time.Time `db:"delivery_time" json:"delivery_time,omitempty"`
	DeliveryHemorrhage       *bool      `db:"delivery_hemorrhage" json:"delivery_hemorrhage,omitempty"`
	DeliveryVacuum           *bool      `db:"delivery_vacuum" json:"delivery_vacuum,omitempty"`
	DeliveryLaceration       *bool      `db:"delivery_laceration" json:"delivery_laceration,omitempty"`
	DeliveryShoulderDystocia *bool      `db:"delivery_shoulder_dystocia" json:"delivery_shoulder_dystocia,omitempty"`
	DeliveryManualPlacenta   *bool      `db:"delivery_manual_placenta" json:"delivery_manual_placenta,omitempty"`
	BMIProgram               *bool      `db:"bmi_program" json:"bmi_program,omitempty"`

	// Triage-action fields.
	TriageNonStressTest *bool `db:"triage_non_stress_test" json:"triage_non_stress_test,omitempty"`
	TriageSpeculumExam  *bool `db:"triage_speculum_exam" json:"triage_speculum_exam,omitempty"`

	// Rounds-action fields.
	RoundsCareType       *string `db:"rounds_care_type" json:"rounds_care_type,omitempty"`
	RoundsSupportiveCare *bool   `db:"rounds_supportive_care" json:"rounds_supportive_care,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ShiftWindow maps to the shift_window table: a doctor's on-duty interval
// [start_datetime, end_datetime). At most one window is active at a time.
type ShiftWindow struct {
	ID            uuid.UUID `db:"id" json:"id"`
	DoctorID      uuid.UUID `db:"doctor_id" json:"doctor_id"`
	StartDatetime time.Time `db:"start_datetime" json:"start_datetime"`
	EndDatetime   time.Time `db:"end_datetime" json:"end_datetime"`
	Active        bool      `db:"active" json:"active"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// PatientStatusEvent maps to the patient_status_event table: out-of-band
// clinical events recorded against a patient's timeline.
type PatientStatusEvent struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	PatientID     uuid.UUID  `db:"patient_id" json:"patient_id"`
	Status        string     `db:"status" json:"status"`
	OccurredAt    time.Time  `db:"occurred_at" json:"occurred_at"`
	AfterStatus   *string    `db:"after_status" json:"after_status,omitempty"`
	DoctorID      *uuid.UUID `db:"doctor_id" json:"doctor_id,omitempty"`
	NonStressTest *bool      `db:"non_stress_test" json:"non_stress_test,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}

var validPatientTypes = map[string]bool{
	PatientTypeMother: true,
	PatientTypeBaby:   true,
}

var validActions = map[string]bool{
	ActionAttended:           true,
	ActionDelivery:           true,
	ActionTriageVisit:        true,
	ActionTriageReassessment: true,
	ActionRounds:             true,
	ActionTongueTieClip:      true,
}

var validStatuses = map[string]bool{
	StatusTriage:               true,
	StatusAdmitted:             true,
	StatusDelivered:            true,
	StatusDischarged:           true,
	StatusInduction:            true,
	StatusContinuousMonitoring: true,
}
