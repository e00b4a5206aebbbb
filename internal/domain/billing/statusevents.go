package billing

import (
	"sort"
	"time"
)

const (
	inductionTotalCap   = 4
	inductionRollingCap = 2
	inductionWindow     = 24 * time.Hour
)

// buildStatusEventBillings converts induction and continuous-monitoring
// events into billing lines. Inductions are capped at four per patient and
// two within any rolling 24 hours; monitoring bills only when the
// orchestrator has not already committed to ghost billing.
func buildStatusEventBillings(s *Snapshot, allowMonitoring bool) []Entry {
	events := make([]StatusEventRecord, 0, len(s.Events))
	for _, e := range s.Events {
		if e.Status == statusInduction || e.Status == statusMonitoring {
			events = append(events, e)
		}
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].OccurredAt.Before(events[j].OccurredAt)
	})

	var entries []Entry
	var billed []time.Time
	for _, e := range events {
		switch e.Status {
		case statusInduction:
			if !canBillInduction(e.OccurredAt, billed) {
				continue
			}
			billed = append(billed, e.OccurredAt)
			doctor := s.doctorRefOptional(e.DoctorID)
			entries = append(entries, Entry{
				Time:     e.OccurredAt,
				Code:     CodeInduction,
				Modifier: afterHoursModifier(e.OccurredAt),
				Doctor:   doctor,
				Kind:     KindStatus,
			})
			if e.NonStressTest {
				entries = append(entries, Entry{
					Time:     e.OccurredAt,
					Code:     CodeNonStressTest,
					Modifier: afterHoursModifier(e.OccurredAt),
					Doctor:   doctor,
					Kind:     KindStatus,
				})
			}
		case statusMonitoring:
			if !allowMonitoring {
				continue
			}
			entries = append(entries, Entry{
				Time:     e.OccurredAt,
				Code:     CodeMonitoring,
				Modifier: afterHoursModifier(e.OccurredAt),
				Doctor:   s.doctorRefOptional(e.DoctorID),
				Kind:     KindStatus,
			})
		}
	}
	return entries
}

// canBillInduction applies the frequency caps against already billed
// induction times, boundary inclusive.
func canBillInduction(t time.Time, billed []time.Time) bool {
	if len(billed) >= inductionTotalCap {
		return false
	}
	recent := 0
	windowStart := t.Add(-inductionWindow)
	for _, b := range billed {
		if !b.Before(windowStart) && !b.After(t) {
			recent++
		}
	}
	return recent < inductionRollingCap
}
