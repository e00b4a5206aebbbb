package billing

import (
	"sort"
	"time"
)

const (
	coincidentGapMin = 14 * time.Minute
	coincidentGapMax = 16 * time.Minute
)

// buildAttendedCallBillings replaces the ghost scheduler for OB and VBAC
// deliveries: every worked non-delivery slot in the admitted-to-delivered
// range becomes a 03.03AR line. Exactly one consecutive pair spaced 14 to 16
// minutes apart, inside the primary window when one exists, carries COINPT on
// both lines; the scan stops at the first match.
func buildAttendedCallBillings(s *Snapshot) []Entry {
	admitted := *s.Patient.AdmittedAt
	delivered := *s.Patient.DeliveredAt

	var slots []SlotRecord
	for _, slot := range s.Slots {
		if slot.Action == "" || slot.Action == actionDelivery {
			continue
		}
		if slot.StartTime.Before(admitted) || slot.StartTime.After(delivered) {
			continue
		}
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].StartTime.Before(slots[j].StartTime) })

	coincident := coincidentPair(slots, s.Windows)

	entries := make([]Entry, 0, len(slots))
	for i, slot := range slots {
		modifier := ""
		if i == coincident || i == coincident+1 {
			modifier = ModifierCoincident
		}
		entries = append(entries, Entry{
			Time:     slot.StartTime,
			Code:     CodeAttendedCall,
			Modifier: modifier,
			Doctor:   s.doctorRef(slot.DoctorID),
			Kind:     KindAttended,
		})
	}
	return entries
}

// coincidentPair returns the index of the first slot of the qualifying pair,
// or -2 when none qualifies.
func coincidentPair(slots []SlotRecord, windows []WindowRecord) int {
	var primary *WindowRecord
	if len(windows) > 0 {
		primary = &windows[0]
	}
	for i := 0; i+1 < len(slots); i++ {
		gap := slots[i+1].StartTime.Sub(slots[i].StartTime)
		if gap < coincidentGapMin || gap > coincidentGapMax {
			continue
		}
		if primary != nil && (!inWindow(slots[i].StartTime, *primary) || !inWindow(slots[i+1].StartTime, *primary)) {
			continue
		}
		return i
	}
	return -2
}

func inWindow(t time.Time, w WindowRecord) bool {
	return !t.Before(w.StartDatetime) && t.Before(w.EndDatetime)
}
