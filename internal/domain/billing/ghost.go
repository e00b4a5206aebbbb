package billing

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

const (
	ghostSlotCap   = 12
	deliveryBuffer = 30 * time.Minute
)

// Selection priorities within the ghost scheduler.
const (
	priorityGhost = iota
	priorityAttended
	priorityEncounterStart
)

type ghostCandidate struct {
	time       time.Time
	doctorID   uuid.UUID
	weight     int
	modifier   string
	priority   int
	contention int
}

// buildGhostBillings selects up to twelve 13.99JA slots for the patient
// across all overlapping windows. Encounter-start slots carry a real
// time-of-day modifier; everything else bills unmodified. Per window the
// order of preference is encounter starts, then remaining attended slots,
// then unattended ghosts placed where contention with other patients is
// lowest. The cross-window union is re-ranked and capped again so the
// twelve-slot limit holds for the patient as a whole.
func buildGhostBillings(s *Snapshot) []Entry {
	admitted := *s.Patient.AdmittedAt
	delivered := *s.Patient.DeliveredAt
	_, deliveryAt, _, _ := resolvedDelivery(s)

	var selected []ghostCandidate
	for _, w := range s.Windows {
		selected = append(selected, selectWindowSlots(s, w, admitted, delivered, deliveryAt)...)
	}

	// Global re-rank: priority, then weight, then time; drop duplicate
	// (doctor, time) pairs; cap at twelve for the whole patient.
	sort.SliceStable(selected, func(i, j int) bool {
		a, b := selected[i], selected[j]
		if a.priority != b.priority {
			return a.priority > b.priority
		}
		if a.weight != b.weight {
			return a.weight > b.weight
		}
		return a.time.Before(b.time)
	})

	type slotKey struct {
		doctor uuid.UUID
		at     time.Time
	}
	seen := make(map[slotKey]bool)
	var entries []Entry
	for _, c := range selected {
		if len(entries) >= ghostSlotCap {
			break
		}
		key := slotKey{c.doctorID, c.time}
		if seen[key] {
			continue
		}
		seen[key] = true
		entries = append(entries, Entry{
			Time:     c.time,
			Code:     CodeGhost,
			Modifier: c.modifier,
			Doctor:   s.doctorRef(c.doctorID),
			Kind:     KindGhost,
			Priority: c.priority,
			Weight:   c.weight,
		})
	}
	return entries
}

// selectWindowSlots runs the per-window selection for one shift window.
func selectWindowSlots(s *Snapshot, w WindowRecord, admitted, delivered, deliveryAt time.Time) []ghostCandidate {
	attended := attendedTimes(s, w)
	encounterStarts := make(map[time.Time]bool)
	for _, enc := range groupEncounters(attended) {
		encounterStarts[enc[0]] = true
	}
	attendedSet := make(map[time.Time]bool, len(attended))
	for _, t := range attended {
		attendedSet[t] = true
	}

	end := w.EndDatetime
	if delivered.Before(end) {
		end = delivered
	}
	bufferStart := deliveryAt.Add(-deliveryBuffer)

	var starts, plain, ghosts []ghostCandidate
	for _, t := range quarterSlots(w.StartDatetime, end) {
		if t.Before(admitted) {
			continue
		}
		// The delivery itself and the half hour leading to it are never
		// ghost-billable.
		if !t.Before(bufferStart) && !t.After(deliveryAt) {
			continue
		}
		modifier, weight := timeModifier(t)
		c := ghostCandidate{time: t, doctorID: w.DoctorID, weight: weight}
		switch {
		case encounterStarts[t]:
			c.modifier = modifier
			c.priority = priorityEncounterStart
			starts = append(starts, c)
		case attendedSet[t]:
			c.priority = priorityAttended
			plain = append(plain, c)
		default:
			c.priority = priorityGhost
			c.contention = slotContention(s, t)
			ghosts = append(ghosts, c)
		}
	}

	sort.SliceStable(starts, func(i, j int) bool {
		if starts[i].weight != starts[j].weight {
			return starts[i].weight > starts[j].weight
		}
		return starts[i].time.Before(starts[j].time)
	})
	sort.SliceStable(plain, func(i, j int) bool {
		return plain[i].time.Before(plain[j].time)
	})
	sort.SliceStable(ghosts, func(i, j int) bool {
		if ghosts[i].contention != ghosts[j].contention {
			return ghosts[i].contention < ghosts[j].contention
		}
		if ghosts[i].weight != ghosts[j].weight {
			return ghosts[i].weight > ghosts[j].weight
		}
		return ghosts[i].time.Before(ghosts[j].time)
	})

	var selected []ghostCandidate
	for _, pool := range [][]ghostCandidate{starts, plain, ghosts} {
		for _, c := range pool {
			if len(selected) >= ghostSlotCap {
				return selected
			}
			selected = append(selected, c)
		}
	}
	return selected
}

// attendedTimes collects the window doctor's worked slot times for this
// patient inside the window, sorted, excluding the delivery slot.
func attendedTimes(s *Snapshot, w WindowRecord) []time.Time {
	var times []time.Time
	for _, slot := range s.Slots {
		if slot.DoctorID != w.DoctorID || slot.Action == "" || slot.Action == actionDelivery {
			continue
		}
		if slot.StartTime.Before(w.StartDatetime) || !slot.StartTime.Before(w.EndDatetime) {
			continue
		}
		times = append(times, slot.StartTime)
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })
	return times
}

// slotContention counts the other patients whose care range covers t and
// whose own delivery buffer does not already exclude it. OB/VBAC deliveries
// never ghost-bill, so they do not contend.
func slotContention(s *Snapshot, t time.Time) int {
	n := 0
	for _, o := range s.Others {
		if o.OBDelivery {
			continue
		}
		if t.Before(o.AdmittedAt) || !t.Before(o.DeliveredAt) {
			continue
		}
		if !t.Before(o.DeliveredAt.Add(-deliveryBuffer)) {
			continue
		}
		n++
	}
	return n
}
