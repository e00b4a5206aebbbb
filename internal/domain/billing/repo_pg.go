package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/obcare/obcare/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type readerPG struct{ pool *pgxpool.Pool }

func NewReaderPG(pool *pgxpool.Pool) Reader {
	return &readerPG{pool: pool}
}

func (r *readerPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

func (r *readerPG) GetPatient(ctx context.Context, id uuid.UUID) (*PatientRecord, error) {
	var p PatientRecord
	var resuscitation *bool
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT id, patient_type, start_datetime, care_admitted_at, care_delivered_at,
			second_triage_at, second_triage_after, baby_resuscitation, parent_patient_id
		FROM patient WHERE id = $1`, id).
		Scan(&p.ID, &p.PatientType, &p.StartDatetime, &p.AdmittedAt, &p.DeliveredAt,
			&p.SecondTriageAt, &p.SecondTriageAfter, &resuscitation, &p.ParentPatientID)
	if err != nil {
		return nil, err
	}
	p.BabyResuscitation = resuscitation != nil && *resuscitation
	return &p, nil
}

const slotSelect = `
	SELECT doctor_id, patient_id, start_time, COALESCE(action, ''),
		COALESCE(delivery_code, ''), delivery_time,
		COALESCE(delivery_hemorrhage, FALSE), COALESCE(delivery_vacuum, FALSE),
		COALESCE(delivery_laceration, FALSE), COALESCE(delivery_shoulder_dystocia, FALSE),
		COALESCE(delivery_manual_placenta, FALSE), COALESCE(bmi_program, FALSE),
		COALESCE(triage_non_stress_test, FALSE), COALESCE(triage_speculum_exam, FALSE),
		COALESCE(rounds_supportive_care, FALSE)
	FROM shift_slot`

func scanSlots(rows pgx.Rows) ([]SlotRecord, error) {
	defer rows.Close()
	var slots []SlotRecord
	for rows.Next() {
		var s SlotRecord
		err := rows.Scan(&s.DoctorID, &s.PatientID, &s.StartTime, &s.Action,
			&s.DeliveryCode, &s.DeliveryTime,
			&s.Hemorrhage, &s.Vacuum, &s.Laceration, &s.ShoulderDystocia,
			&s.ManualPlacenta, &s.BMIProgram,
			&s.NonStressTest, &s.SpeculumExam, &s.SupportiveCare)
		if err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

func (r *readerPG) ListPatientSlots(ctx context.Context, patientID uuid.UUID, from, to time.Time) ([]SlotRecord, error) {
	rows, err := r.conn(ctx).Query(ctx, slotSelect+`
		WHERE patient_id = $1 AND start_time >= $2 AND start_time <= $3
		ORDER BY start_time`, patientID, from, to)
	if err != nil {
		return nil, err
	}
	return scanSlots(rows)
}

func (r *readerPG) ListDoctorSlots(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]SlotRecord, error) {
	rows, err := r.conn(ctx).Query(ctx, slotSelect+`
		WHERE doctor_id = $1 AND start_time >= $2 AND start_time < $3
		ORDER BY start_time`, doctorID, from, to)
	if err != nil {
		return nil, err
	}
	return scanSlots(rows)
}

func (r *readerPG) ListActiveWindows(ctx context.Context, from, to time.Time) ([]WindowRecord, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT doctor_id, start_datetime, end_datetime FROM shift_window
		WHERE active AND start_datetime < $2 AND end_datetime > $1
		ORDER BY start_datetime`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var windows []WindowRecord
	for rows.Next() {
		var w WindowRecord
		if err := rows.Scan(&w.DoctorID, &w.StartDatetime, &w.EndDatetime); err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}
	return windows, rows.Err()
}

func (r *readerPG) ListStatusEvents(ctx context.Context, patientID uuid.UUID, statuses ...string) ([]StatusEventRecord, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT status, occurred_at, doctor_id, COALESCE(non_stress_test, FALSE)
		FROM patient_status_event
		WHERE patient_id = $1 AND status = ANY($2)
		ORDER BY occurred_at`, patientID, statuses)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var events []StatusEventRecord
	for rows.Next() {
		var e StatusEventRecord
		if err := rows.Scan(&e.Status, &e.OccurredAt, &e.DoctorID, &e.NonStressTest); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *readerPG) GetDoctors(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]DoctorRecord, error) {
	doctors := make(map[uuid.UUID]DoctorRecord, len(ids))
	if len(ids) == 0 {
		return doctors, nil
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, name, obstetrician FROM doctor WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var d DoctorRecord
		if err := rows.Scan(&d.ID, &d.Name, &d.Obstetrician); err != nil {
			return nil, err
		}
		doctors[d.ID] = d
	}
	return doctors, rows.Err()
}

func (r *readerPG) ListCareRanges(ctx context.Context, excludePatientID uuid.UUID) ([]CareRange, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT p.id, p.care_admitted_at, p.care_delivered_at,
			EXISTS (
				SELECT 1 FROM shift_slot s
				JOIN doctor d ON d.id = s.doctor_id
				WHERE s.patient_id = p.id AND s.action = 'delivery'
					AND (COALESCE(s.delivery_code, '') IN ($2, $3)
						OR (COALESCE(s.delivery_code, '') = '' AND d.obstetrician))
			)
		FROM patient p
		WHERE p.id <> $1
			AND p.care_admitted_at IS NOT NULL
			AND p.care_delivered_at IS NOT NULL
			AND p.care_admitted_at < p.care_delivered_at`,
		excludePatientID, CodeDeliveryOB, CodeDeliveryVBAC)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ranges []CareRange
	for rows.Next() {
		var c CareRange
		if err := rows.Scan(&c.PatientID, &c.AdmittedAt, &c.DeliveredAt, &c.OBDelivery); err != nil {
			return nil, err
		}
		ranges = append(ranges, c)
	}
	return ranges, rows.Err()
}
