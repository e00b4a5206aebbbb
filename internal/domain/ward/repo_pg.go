package ward

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

// =========== Doctor Repository ===========

type doctorRepoPG struct{ pool *pgxpool.Pool }

func NewDoctorRepoPG(pool *pgxpool.Pool) DoctorRepository {
	return &doctorRepoPG{pool: pool}
}

func (r *doctorRepoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const doctorCols = `id, name, obstetrician, created_at, updated_at`

func (r *doctorRepoPG) scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor
	err := row.Scan(&d.ID, &d.Name, &d.Obstetrician, &d.CreatedAt, &d.UpdatedAt)
	return &d, err
}

func (r *doctorRepoPG) Create(ctx context.Context, d *Doctor) error {
	d.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO doctor (id, name, obstetrician) VALUES ($1, $2, $3)`,
		d.ID, d.Name, d.Obstetrician)
	return err
}

func (r *doctorRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return r.scanDoctor(r.conn(ctx).QueryRow(ctx, `SELECT `+doctorCols+` FROM doctor WHERE id = $1`, id))
}

func (r *doctorRepoPG) Update(ctx context.Context, d *Doctor) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE doctor SET name=$2, obstetrician=$3, updated_at=NOW() WHERE id = $1`,
		d.ID, d.Name, d.Obstetrician)
	return err
}

func (r *doctorRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM doctor WHERE id = $1`, id)
	return err
}

func (r *doctorRepoPG) List(ctx context.Context, limit, offset int) ([]*Doctor, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM doctor`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+doctorCols+` FROM doctor ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Doctor
	for rows.Next() {
		d, err := r.scanDoctor(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, d)
	}
	return items, total, nil
}

// =========== Patient Repository ===========

type patientRepoPG struct{ pool *pgxpool.Pool }

func NewPatientRepoPG(pool *pgxpool.Pool) PatientRepository {
	return &patientRepoPG{pool: pool}
}

func (r *patientRepoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const patientCols = `id, patient_type, care_status, start_datetime, care_admitted_at,
	care_delivered_at, care_discharged_at, second_triage_at, second_triage_after,
	baby_resuscitation, parent_patient_id, created_at, updated_at`

func (r *patientRepoPG) scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.PatientType, &p.CareStatus, &p.StartDatetime, &p.CareAdmittedAt,
		&p.CareDeliveredAt, &p.CareDischargedAt, &p.SecondTriageAt, &p.SecondTriageAfter,
		&p.BabyResuscitation, &p.ParentPatientID, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *patientRepoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO patient (id, patient_type, care_status, start_datetime, care_admitted_at,
			care_delivered_at, care_discharged_at, second_triage_at, second_triage_after,
			baby_resuscitation, parent_patient_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		p.ID, p.PatientType, p.CareStatus, p.StartDatetime, p.CareAdmittedAt,
		p.CareDeliveredAt, p.CareDischargedAt, p.SecondTriageAt, p.SecondTriageAfter,
		p.BabyResuscitation, p.ParentPatientID)
	return err
}

func (r *patientRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return r.scanPatient(r.conn(ctx).QueryRow(ctx, `SELECT `+patientCols+` FROM patient WHERE id = $1`, id))
}

func (r *patientRepoPG) Update(ctx context.Context, p *Patient) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE patient SET patient_type=$2, care_status=$3, start_datetime=$4,
			care_admitted_at=$5, care_delivered_at=$6, care_discharged_at=$7,
			second_triage_at=$8, second_triage_after=$9, baby_resuscitation=$10,
			parent_patient_id=$11, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.PatientType, p.CareStatus, p.StartDatetime,
		p.CareAdmittedAt, p.CareDeliveredAt, p.CareDischargedAt,
		p.SecondTriageAt, p.SecondTriageAfter, p.BabyResuscitation,
		p.ParentPatientID)
	return err
}

func (r *patientRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM patient WHERE id = $1`, id)
	return err
}

func (r *patientRepoPG) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patient`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+patientCols+` FROM patient ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		p, err := r.scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, nil
}

func (r *patientRepoPG) ListByParent(ctx context.Context, parentID uuid.UUID) ([]*Patient, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+patientCols+` FROM patient WHERE parent_patient_id = $1 ORDER BY created_at`, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		p, err := r.scanPatient(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, nil
}

// =========== Slot Repository ===========

type slotRepoPG struct{ pool *pgxpool.Pool }

func NewSlotRepoPG(pool *pgxpool.Pool) SlotRepository {
	return &slotRepoPG{pool: pool}
}

func (r *slotRepoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const slotCols = `id, doctor_id, patient_id, start_time, action,
	delivery_code, delivery_time, delivery_hemorrhage, delivery_vacuum,
	delivery_laceration, delivery_shoulder_dystocia, delivery_manual_placenta,
	bmi_program, triage_non_stress_test, triage_speculum_exam,
	rounds_care_type, rounds_supportive_care, created_at, updated_at`

func (r *slotRepoPG) scanSlot(row pgx.Row) (*ShiftSlot, error) {
	var s ShiftSlot
	err := row.Scan(&s.ID, &s.DoctorID, &s.PatientID, &s.StartTime, &s.Action,
		&s.DeliveryCode, &s.DeliveryTime, &s.DeliveryHemorrhage, &s.DeliveryVacuum,
		&s.DeliveryLaceration, &s.DeliveryShoulderDystocia, &s.DeliveryManualPlacenta,
		&s.BMIProgram, &s.TriageNonStressTest, &s.TriageSpeculumExam,
		&s.RoundsCareType, &s.RoundsSupportiveCare, &s.CreatedAt, &s.UpdatedAt)
	return &s, err
}

func (r *slotRepoPG) Upsert(ctx context.Context, s *ShiftSlot) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO shift_slot (id, doctor_id, patient_id, start_time, action,
			delivery_code, delivery_time, delivery_hemorrhage, delivery_vacuum,
			delivery_laceration, delivery_shoulder_dystocia, delivery_manual_placenta,
			bmi_program, triage_non_stress_test, triage_speculum_exam,
			rounds_care_type, rounds_supportive_care)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
		ON CONFLICT (doctor_id, start_time) DO UPDATE SET
			patient_id=EXCLUDED.patient_id, action=EXCLUDED.action,
			delivery_code=EXCLUDED.delivery_code, delivery_time=EXCLUDED.delivery_time,
			delivery_hemorrhage=EXCLUDED.delivery_hemorrhage, delivery_vacuum=EXCLUDED.delivery_vacuum,
			delivery_laceration=EXCLUDED.delivery_laceration,
			delivery_shoulder_dystocia=EXCLUDED.delivery_shoulder_dystocia,
			delivery_manual_placenta=EXCLUDED.delivery_manual_placenta,
			bmi_program=EXCLUDED.bmi_program,
			triage_non_stress_test=EXCLUDED.triage_non_stress_test,
			triage_speculum_exam=EXCLUDED.triage_speculum_exam,
			rounds_care_type=EXCLUDED.rounds_care_type,
			rounds_supportive_care=EXCLUDED.rounds_supportive_care,
			updated_at=NOW()`,
		s.ID, s.DoctorID, s.PatientID, s.StartTime, s.Action,
		s.DeliveryCode, s.DeliveryTime, s.DeliveryHemorrhage, s.DeliveryVacuum,
		s.DeliveryLaceration, s.DeliveryShoulderDystocia, s.DeliveryManualPlacenta,
		s.BMIProgram, s.TriageNonStressTest, s.TriageSpeculumExam,
		s.RoundsCareType, s.RoundsSupportiveCare)
	return err
}

func (r *slotRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*ShiftSlot, error) {
	return r.scanSlot(r.conn(ctx).QueryRow(ctx, `SELECT `+slotCols+` FROM shift_slot WHERE id = $1`, id))
}

func (r *slotRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM shift_slot WHERE id = $1`, id)
	return err
}

func (r *slotRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, from, to time.Time) ([]*ShiftSlot, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+slotCols+` FROM shift_slot
		WHERE patient_id = $1 AND start_time >= $2 AND start_time <= $3
		ORDER BY start_time`, patientID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*ShiftSlot
	for rows.Next() {
		s, err := r.scanSlot(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, nil
}

func (r *slotRepoPG) ListByDoctor(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]*ShiftSlot, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+slotCols+` FROM shift_slot
		WHERE doctor_id = $1 AND start_time >= $2 AND start_time < $3
		ORDER BY start_time`, doctorID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*ShiftSlot
	for rows.Next() {
		s, err := r.scanSlot(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, nil
}

// =========== Window Repository ===========

type windowRepoPG struct{ pool *pgxpool.Pool }

func NewWindowRepoPG(pool *pgxpool.Pool) WindowRepository {
	return &windowRepoPG{pool: pool}
}

func (r *windowRepoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const windowCols = `id, doctor_id, start_datetime, end_datetime, active, created_at, updated_at`

func (r *windowRepoPG) scanWindow(row pgx.Row) (*ShiftWindow, error) {
	var w ShiftWindow
	err := row.Scan(&w.ID, &w.DoctorID, &w.StartDatetime, &w.EndDatetime, &w.Active, &w.CreatedAt, &w.UpdatedAt)
	return &w, err
}

func (r *windowRepoPG) Create(ctx context.Context, w *ShiftWindow) error {
	w.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO shift_window (id, doctor_id, start_datetime, end_datetime, active)
		VALUES ($1,$2,$3,$4,$5)`,
		w.ID, w.DoctorID, w.StartDatetime, w.EndDatetime, w.Active)
	return err
}

func (r *windowRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*ShiftWindow, error) {
	return r.scanWindow(r.conn(ctx).QueryRow(ctx, `SELECT `+windowCols+` FROM shift_window WHERE id = $1`, id))
}

func (r *windowRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM shift_window WHERE id = $1`, id)
	return err
}

func (r *windowRepoPG) Activate(ctx context.Context, id uuid.UUID) error {
	if _, err := r.conn(ctx).Exec(ctx, `UPDATE shift_window SET active = FALSE, updated_at = NOW() WHERE active`); err != nil {
		return err
	}
	_, err := r.conn(ctx).Exec(ctx, `UPDATE shift_window SET active = TRUE, updated_at = NOW() WHERE id = $1`, id)
	return err
}

func (r *windowRepoPG) ListActiveOverlapping(ctx context.Context, from, to time.Time) ([]*ShiftWindow, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+windowCols+` FROM shift_window
		WHERE active AND start_datetime < $2 AND end_datetime > $1
		ORDER BY start_datetime`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*ShiftWindow
	for rows.Next() {
		w, err := r.scanWindow(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, w)
	}
	return items, nil
}

func (r *windowRepoPG) List(ctx context.Context, limit, offset int) ([]*ShiftWindow, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM shift_window`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+windowCols+` FROM shift_window ORDER BY start_datetime DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*ShiftWindow
	for rows.Next() {
		w, err := r.scanWindow(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, w)
	}
	return items, total, nil
}

// =========== Status Event Repository ===========

type statusEventRepoPG struct{ pool *pgxpool.Pool }

func NewStatusEventRepoPG(pool *pgxpool.Pool) StatusEventRepository {
	return &statusEventRepoPG{pool: pool}
}

func (r *statusEventRepoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const eventCols = `id, patient_id, status, occurred_at, after_status, doctor_id, non_stress_test, created_at`

func (r *statusEventRepoPG) scanEvent(row pgx.Row) (*PatientStatusEvent, error) {
	var e PatientStatusEvent
	err := row.Scan(&e.ID, &e.PatientID, &e.Status, &e.OccurredAt, &e.AfterStatus, &e.DoctorID, &e.NonStressTest, &e.CreatedAt)
	return &e, err
}

func (r *statusEventRepoPG) Create(ctx context.Context, e *PatientStatusEvent) error {
	e.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO patient_status_event (id, patient_id, status, occurred_at, after_status, doctor_id, non_stress_test)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		e.ID, e.PatientID, e.Status, e.OccurredAt, e.AfterStatus, e.DoctorID, e.NonStressTest)
	return err
}

func (r *statusEventRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM patient_status_event WHERE id = $1`, id)
	return err
}

func (r *statusEventRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, statuses ...string) ([]*PatientStatusEvent, error) {
	query := `SELECT ` + eventCols + ` FROM patient_status_event WHERE patient_id = $1`
	args := []interface{}{patientID}
	if len(statuses) > 0 {
		query += ` AND status = ANY($2)`
		args = append(args, statuses)
	}
	query += ` ORDER BY occurred_at`

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*PatientStatusEvent
	for rows.Next() {
		e, err := r.scanEvent(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, nil
}
