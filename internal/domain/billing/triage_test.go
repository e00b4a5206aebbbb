package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

// Test fixtures shared across the engine tests.

func timeRef(t time.Time) *time.Time { return &t }

func motherSnapshot(admitted, delivered time.Time) *Snapshot {
	return &Snapshot{
		Patient: PatientRecord{
			ID:          uuid.New(),
			PatientType: "mother",
			AdmittedAt:  timeRef(admitted),
			DeliveredAt: timeRef(delivered),
		},
		Doctors: make(map[uuid.UUID]DoctorRecord),
	}
}

func (s *Snapshot) addDoctor(name string, obstetrician bool) uuid.UUID {
	id := uuid.New()
	s.Doctors[id] = DoctorRecord{ID: id, Name: name, Obstetrician: obstetrician}
	return id
}

func (s *Snapshot) addSlot(doctorID uuid.UUID, at time.Time, action string) *SlotRecord {
	pid := s.Patient.ID
	s.Slots = append(s.Slots, SlotRecord{
		DoctorID:  doctorID,
		PatientID: &pid,
		StartTime: at,
		Action:    action,
	})
	return &s.Slots[len(s.Slots)-1]
}

func entriesWithCode(entries []Entry, code string) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.Code == code {
			out = append(out, e)
		}
	}
	return out
}

func TestTriageVisitDurationTiers(t *testing.T) {
	admitted := time.Date(2024, 1, 8, 8, 0, 0, 0, time.UTC)
	delivered := admitted.Add(6 * time.Hour)

	// Three contiguous visit slots, 45 minutes total.
	s := motherSnapshot(admitted, delivered)
	dr := s.addDoctor("Dr. Osei", false)
	start := admitted.Add(-2 * time.Hour)
	for i := 0; i < 3; i++ {
		s.addSlot(dr, start.Add(time.Duration(i)*15*time.Minute), actionTriageVisit)
	}
	entries := buildTriageBillings(s, delivered, true)
	visits := entriesWithCode(entries, CodeTriageVisit)
	if len(visits) != 1 {
		t.Fatalf("expected 1 visit line, got %d", len(visits))
	}
	if visits[0].Modifier != "CMGP03" {
		t.Errorf("45-minute visit modifier = %q want CMGP03", visits[0].Modifier)
	}
	if !visits[0].Time.Equal(start) {
		t.Errorf("visit billed at %v want %v", visits[0].Time, start)
	}

	// A single slot.
	s = motherSnapshot(admitted, delivered)
	dr = s.addDoctor("Dr. Osei", false)
	s.addSlot(dr, start, actionTriageVisit)
	visits = entriesWithCode(buildTriageBillings(s, delivered, true), CodeTriageVisit)
	if len(visits) != 1 || visits[0].Modifier != "CMGP01" {
		t.Errorf("15-minute visit: got %v", visits)
	}

	// No visit slots at all.
	s = motherSnapshot(admitted, delivered)
	if got := entriesWithCode(buildTriageBillings(s, delivered, true), CodeTriageVisit); len(got) != 0 {
		t.Errorf("expected no visit line, got %d", len(got))
	}
}

func TestTriageVisitBlocked(t *testing.T) {
	admitted := time.Date(2024, 1, 8, 8, 0, 0, 0, time.UTC)
	s := motherSnapshot(admitted, admitted.Add(6*time.Hour))
	dr := s.addDoctor("Dr. Osei", false)
	s.addSlot(dr, admitted.Add(-time.Hour), actionTriageVisit)

	entries := buildTriageBillings(s, *s.Patient.DeliveredAt, false)
	if got := entriesWithCode(entries, CodeTriageVisit); len(got) != 0 {
		t.Errorf("expected visit suppressed when disallowed, got %d lines", len(got))
	}
}

func TestReassessmentEncounters(t *testing.T) {
	admitted := time.Date(2024, 1, 8, 12, 0, 0, 0, time.UTC)
	s := motherSnapshot(admitted, admitted.Add(6*time.Hour))
	dr := s.addDoctor("Dr. Lindqvist", false)

	// First encounter: three contiguous slots, 45 minutes.
	first := time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		s.addSlot(dr, first.Add(time.Duration(i)*15*time.Minute), actionTriageReassessment)
	}
	// Second encounter after a gap: two slots, 30 minutes.
	second := first.Add(2 * time.Hour)
	s.addSlot(dr, second, actionTriageReassessment)
	s.addSlot(dr, second.Add(15*time.Minute), actionTriageReassessment)
	// Third: a lone slot.
	third := second.Add(2 * time.Hour)
	s.addSlot(dr, third, actionTriageReassessment)

	entries := buildTriageBillings(s, *s.Patient.DeliveredAt, true)
	reassess := entriesWithCode(entries, CodeReassessDay)
	if len(reassess) != 3 {
		t.Fatalf("expected 3 encounters, got %d", len(reassess))
	}
	if reassess[0].Modifier != ModifierReassess35 {
		t.Errorf("45-minute encounter modifier = %q want %q", reassess[0].Modifier, ModifierReassess35)
	}
	if reassess[1].Modifier != ModifierReassess20 {
		t.Errorf("30-minute encounter modifier = %q want %q", reassess[1].Modifier, ModifierReassess20)
	}
	if reassess[2].Modifier != "" {
		t.Errorf("15-minute encounter modifier = %q want empty", reassess[2].Modifier)
	}
}

func TestTriageExtras(t *testing.T) {
	admitted := time.Date(2024, 1, 8, 12, 0, 0, 0, time.UTC)
	s := motherSnapshot(admitted, admitted.Add(6*time.Hour))
	dr := s.addDoctor("Dr. Lindqvist", false)

	at := time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)
	slot := s.addSlot(dr, at, actionTriageVisit)
	slot.NonStressTest = true
	slot.SpeculumExam = true

	entries := buildTriageBillings(s, *s.Patient.DeliveredAt, true)
	if got := entriesWithCode(entries, CodeNonStressTest); len(got) != 1 || !got[0].Time.Equal(at) {
		t.Errorf("expected one NST line at slot time, got %v", got)
	}
	if got := entriesWithCode(entries, CodeSpeculumExam); len(got) != 1 || !got[0].Time.Equal(at) {
		t.Errorf("expected one speculum line at slot time, got %v", got)
	}
}

func TestTriageCutoffExcludesLateSlots(t *testing.T) {
	admitted := time.Date(2024, 1, 8, 8, 0, 0, 0, time.UTC)
	delivered := admitted.Add(6 * time.Hour)
	s := motherSnapshot(admitted, delivered)
	dr := s.addDoctor("Dr. Osei", false)
	s.addSlot(dr, delivered.Add(2*time.Hour), actionTriageReassessment)

	if got := buildTriageBillings(s, delivered, true); len(got) != 0 {
		t.Errorf("expected post-cutoff slot excluded, got %d entries", len(got))
	}

	// A post-delivery Triage status event moves the cutoff out.
	s.Events = append(s.Events, StatusEventRecord{Status: statusTriage, OccurredAt: delivered.Add(3 * time.Hour)})
	cutoff := triageCutoff(s)
	if !cutoff.Equal(delivered.Add(3 * time.Hour)) {
		t.Fatalf("cutoff = %v", cutoff)
	}
	if got := buildTriageBillings(s, cutoff, true); len(got) != 1 {
		t.Errorf("expected late slot billed under extended cutoff, got %d entries", len(got))
	}
}

func TestAllowTriageVisit(t *testing.T) {
	admitted := time.Date(2024, 1, 8, 12, 0, 0, 0, time.UTC)
	s := motherSnapshot(admitted, admitted.Add(6*time.Hour))
	dr := s.addDoctor("Dr. Osei", false)
	visitAt := time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)
	s.addSlot(dr, visitAt, actionTriageVisit)

	if !allowTriageVisit(s) {
		t.Fatal("expected visit allowed with no induction")
	}

	// Same-day pre-admission induction by the triage doctor blocks the visit.
	drID := dr
	s.Events = append(s.Events, StatusEventRecord{
		Status:     statusInduction,
		OccurredAt: time.Date(2024, 1, 8, 10, 0, 0, 0, time.UTC),
		DoctorID:   &drID,
	})
	if allowTriageVisit(s) {
		t.Error("expected visit blocked by same-day pre-admission induction")
	}

	// A different doctor's induction does not block.
	other := s.addDoctor("Dr. Webb", false)
	s.Events[0].DoctorID = &other
	if !allowTriageVisit(s) {
		t.Error("expected visit allowed when induction doctor did not staff triage")
	}

	// Induction after admission does not block.
	s.Events[0].DoctorID = &drID
	s.Events[0].OccurredAt = admitted.Add(time.Hour)
	if !allowTriageVisit(s) {
		t.Error("expected visit allowed for post-admission induction")
	}

	// Different calendar day does not block.
	s.Events[0].OccurredAt = time.Date(2024, 1, 7, 23, 0, 0, 0, time.UTC)
	if !allowTriageVisit(s) {
		t.Error("expected visit allowed for prior-day induction")
	}
}
