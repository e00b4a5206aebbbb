package billing

import (
	"testing"
	"time"
)

func TestFloorQuarter(t *testing.T) {
	cases := []struct {
		in   time.Time
		want time.Time
	}{
		{time.Date(2024, 1, 8, 10, 0, 0, 0, time.UTC), time.Date(2024, 1, 8, 10, 0, 0, 0, time.UTC)},
		{time.Date(2024, 1, 8, 10, 14, 59, 0, time.UTC), time.Date(2024, 1, 8, 10, 0, 0, 0, time.UTC)},
		{time.Date(2024, 1, 8, 10, 15, 0, 0, time.UTC), time.Date(2024, 1, 8, 10, 15, 0, 0, time.UTC)},
		{time.Date(2024, 1, 8, 10, 44, 0, 1, time.UTC), time.Date(2024, 1, 8, 10, 30, 0, 0, time.UTC)},
		{time.Date(2024, 1, 8, 23, 59, 59, 0, time.UTC), time.Date(2024, 1, 8, 23, 45, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		if got := floorQuarter(c.in); !got.Equal(c.want) {
			t.Errorf("floorQuarter(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestQuarterSlots(t *testing.T) {
	from := time.Date(2024, 1, 8, 8, 5, 0, 0, time.UTC)
	until := time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)
	slots := quarterSlots(from, until)
	if len(slots) != 4 {
		t.Fatalf("expected 4 slots, got %d", len(slots))
	}
	if !slots[0].Equal(time.Date(2024, 1, 8, 8, 0, 0, 0, time.UTC)) {
		t.Errorf("first slot = %v", slots[0])
	}
	if !slots[3].Equal(time.Date(2024, 1, 8, 8, 45, 0, 0, time.UTC)) {
		t.Errorf("last slot = %v", slots[3])
	}
	if got := quarterSlots(until, until); got != nil {
		t.Errorf("expected no slots for empty range, got %d", len(got))
	}
}

func TestGroupEncounters(t *testing.T) {
	base := time.Date(2024, 1, 8, 8, 0, 0, 0, time.UTC)
	times := []time.Time{
		base,
		base.Add(15 * time.Minute),
		base.Add(30 * time.Minute),
		base.Add(2 * time.Hour),
		base.Add(2*time.Hour + 15*time.Minute),
		base.Add(5 * time.Hour),
	}
	groups := groupEncounters(times)
	if len(groups) != 3 {
		t.Fatalf("expected 3 encounters, got %d", len(groups))
	}
	if len(groups[0]) != 3 || len(groups[1]) != 2 || len(groups[2]) != 1 {
		t.Errorf("unexpected group sizes: %d %d %d", len(groups[0]), len(groups[1]), len(groups[2]))
	}
}

func TestDayClassifiers(t *testing.T) {
	monday := time.Date(2024, 1, 8, 12, 0, 0, 0, time.UTC)
	saturday := time.Date(2024, 1, 6, 12, 0, 0, 0, time.UTC)
	if isWeekend(monday) {
		t.Error("monday is not a weekend")
	}
	if !isWeekend(saturday) {
		t.Error("saturday is a weekend")
	}
	if !isNight(time.Date(2024, 1, 8, 6, 59, 0, 0, time.UTC)) {
		t.Error("06:59 is night")
	}
	if isNight(time.Date(2024, 1, 8, 7, 0, 0, 0, time.UTC)) {
		t.Error("07:00 is not night")
	}
	if !isNight(time.Date(2024, 1, 8, 22, 0, 0, 0, time.UTC)) {
		t.Error("22:00 is night")
	}
	if !isEvening(time.Date(2024, 1, 8, 17, 0, 0, 0, time.UTC)) {
		t.Error("weekday 17:00 is evening")
	}
	if isEvening(time.Date(2024, 1, 6, 17, 0, 0, 0, time.UTC)) {
		t.Error("saturday 17:00 is weekend, not evening")
	}
	if isEvening(time.Date(2024, 1, 8, 22, 0, 0, 0, time.UTC)) {
		t.Error("22:00 is night, not evening")
	}
}
