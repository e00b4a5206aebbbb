package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestGhostTwelveSlotCap(t *testing.T) {
	admitted := time.Date(2024, 1, 8, 8, 0, 0, 0, time.UTC)
	delivered := admitted.Add(12 * time.Hour)
	s := motherSnapshot(admitted, delivered)
	dr := s.addDoctor("Dr. Osei", false)
	windowFor(s, dr, admitted, delivered)

	entries := buildGhostBillings(s)
	if len(entries) != ghostSlotCap {
		t.Fatalf("expected %d entries, got %d", ghostSlotCap, len(entries))
	}
	for _, e := range entries {
		if e.Code != CodeGhost {
			t.Errorf("unexpected code %q", e.Code)
		}
	}
}

func TestGhostDeliveryBuffer(t *testing.T) {
	admitted := time.Date(2024, 1, 8, 8, 0, 0, 0, time.UTC)
	delivered := admitted.Add(2 * time.Hour) // 10:00
	s := motherSnapshot(admitted, delivered)
	dr := s.addDoctor("Dr. Osei", false)
	windowFor(s, dr, admitted, admitted.Add(12*time.Hour))

	entries := buildGhostBillings(s)
	// Candidates run 08:00 to 09:15; 09:30 onward falls in the buffer.
	if len(entries) != 6 {
		t.Fatalf("expected 6 entries, got %d", len(entries))
	}
	buffer := delivered.Add(-deliveryBuffer)
	for _, e := range entries {
		if !e.Time.Before(buffer) {
			t.Errorf("entry at %v inside delivery buffer", e.Time)
		}
	}
}

func TestGhostEncounterStartsPreferred(t *testing.T) {
	// Saturday, so every daytime slot shares weight 2 and the encounter
	// start is distinguished by priority, not weight.
	admitted := time.Date(2024, 1, 6, 8, 0, 0, 0, time.UTC)
	delivered := admitted.Add(12 * time.Hour)
	s := motherSnapshot(admitted, delivered)
	dr := s.addDoctor("Dr. Osei", false)
	windowFor(s, dr, admitted, delivered)

	encStart := admitted.Add(4 * time.Hour) // 12:00
	s.addSlot(dr, encStart, actionAttended)
	s.addSlot(dr, encStart.Add(15*time.Minute), actionAttended)

	entries := buildGhostBillings(s)
	if len(entries) != ghostSlotCap {
		t.Fatalf("expected %d entries, got %d", ghostSlotCap, len(entries))
	}

	var foundStart, foundSecond bool
	for _, e := range entries {
		if e.Time.Equal(encStart) {
			foundStart = true
			if e.Modifier != ModifierWeekend {
				t.Errorf("encounter start modifier = %q want %q", e.Modifier, ModifierWeekend)
			}
		}
		if e.Time.Equal(encStart.Add(15 * time.Minute)) {
			foundSecond = true
			if e.Modifier != "" {
				t.Errorf("attended non-start modifier = %q want empty", e.Modifier)
			}
		}
	}
	if !foundStart || !foundSecond {
		t.Errorf("attended slots missing from selection: start=%v second=%v", foundStart, foundSecond)
	}
}

func TestGhostContentionAvoidance(t *testing.T) {
	admitted := time.Date(2024, 1, 8, 8, 0, 0, 0, time.UTC)
	delivered := admitted.Add(4 * time.Hour) // 12:00, buffer from 11:30
	s := motherSnapshot(admitted, delivered)
	dr := s.addDoctor("Dr. Osei", false)
	windowFor(s, dr, admitted, delivered)

	// Another patient occupies 08:00 to 10:00; slots after 10:00 are free.
	s.Others = append(s.Others, CareRange{
		PatientID:   uuid.New(),
		AdmittedAt:  admitted,
		DeliveredAt: admitted.Add(2 * time.Hour),
	})

	entries := buildGhostBillings(s)
	// 08:00 to 11:15 is 14 candidates. The other patient's own delivery
	// buffer frees 09:30 onward, so 8 slots are contention-free and all of
	// them are picked before any contended one.
	if len(entries) != ghostSlotCap {
		t.Fatalf("expected %d entries, got %d", ghostSlotCap, len(entries))
	}
	free := 0
	for _, e := range entries {
		if !e.Time.Before(admitted.Add(90 * time.Minute)) {
			free++
		}
	}
	if free != 8 {
		t.Errorf("expected all 8 contention-free slots selected, got %d", free)
	}
}

func TestGhostContentionIgnoresOBDeliveries(t *testing.T) {
	at := time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)
	s := motherSnapshot(at.Add(-time.Hour), at.Add(time.Hour))
	s.Others = append(s.Others, CareRange{
		PatientID:   uuid.New(),
		AdmittedAt:  at.Add(-time.Hour),
		DeliveredAt: at.Add(2 * time.Hour),
		OBDelivery:  true,
	})
	if got := slotContention(s, at); got != 0 {
		t.Errorf("OB delivery should not contend, got %d", got)
	}
	s.Others[0].OBDelivery = false
	if got := slotContention(s, at); got != 1 {
		t.Errorf("expected contention 1, got %d", got)
	}
}

func TestGhostCrossWindowDedupeAndCap(t *testing.T) {
	admitted := time.Date(2024, 1, 8, 8, 0, 0, 0, time.UTC)
	delivered := admitted.Add(10 * time.Hour)
	s := motherSnapshot(admitted, delivered)
	dr := s.addDoctor("Dr. Osei", false)
	// Two overlapping windows for the same doctor produce duplicate
	// (doctor, time) candidates.
	windowFor(s, dr, admitted, admitted.Add(6*time.Hour))
	windowFor(s, dr, admitted.Add(2*time.Hour), admitted.Add(8*time.Hour))

	entries := buildGhostBillings(s)
	if len(entries) > ghostSlotCap {
		t.Fatalf("cap exceeded: %d", len(entries))
	}
	type key struct {
		doctor uuid.UUID
		at     time.Time
	}
	seen := make(map[key]bool)
	for _, e := range entries {
		k := key{e.Doctor.ID, e.Time}
		if seen[k] {
			t.Errorf("duplicate ghost slot for %v at %v", e.Doctor.ID, e.Time)
		}
		seen[k] = true
	}
}

func TestGhostNightSlotsOutrankDay(t *testing.T) {
	// Window spanning 04:00 to 20:00 on a weekday: the 04:00-07:00 slots
	// carry weight 3 and win the ghost ranking over daytime weight 1.
	admitted := time.Date(2024, 1, 8, 4, 0, 0, 0, time.UTC)
	delivered := admitted.Add(16 * time.Hour)
	s := motherSnapshot(admitted, delivered)
	dr := s.addDoctor("Dr. Osei", false)
	windowFor(s, dr, admitted, delivered)

	entries := buildGhostBillings(s)
	if len(entries) != ghostSlotCap {
		t.Fatalf("expected %d entries, got %d", ghostSlotCap, len(entries))
	}
	seven := time.Date(2024, 1, 8, 7, 0, 0, 0, time.UTC)
	night := 0
	for _, e := range entries {
		if e.Time.Before(seven) {
			night++
		}
	}
	if night != 12 {
		t.Errorf("expected all 12 selections in the night band, got %d", night)
	}
}
